package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// listScoped is implemented by requests addressed to a single list.
type listScoped interface {
	GetListID() string
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, the list the request targets, the duration and
// any error code or message. Client errors log at warn, the rest at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := []any{"procedure", req.Spec().Procedure}
			if scoped, ok := req.Any().(listScoped); ok && scoped.GetListID() != "" {
				attrs = append(attrs, "list_id", scoped.GetListID())
			}

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					slog.Warn("RPC error", append(attrs,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
					)...)
				} else {
					slog.Error("RPC error", append(attrs, "error", err)...)
				}
			} else {
				slog.Info("RPC ok", attrs...)
			}

			return resp, err
		}
	}
}
