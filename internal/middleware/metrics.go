package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/kidoikoiaki/internal/observability"
)

// MetricsInterceptor records a request count and latency for every RPC.
func MetricsInterceptor(m *observability.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.ObserveRPC(req.Spec().Procedure, code, time.Since(start).Seconds())

			return resp, err
		}
	}
}
