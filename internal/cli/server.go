package cli

import (
	"encoding/json"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/kidoikoiaki/internal/events"
	"github.com/mmynk/kidoikoiaki/internal/middleware"
	"github.com/mmynk/kidoikoiaki/internal/observability"
	"github.com/mmynk/kidoikoiaki/internal/service"
	"github.com/mmynk/kidoikoiaki/internal/storage"
)

// serverDeps are the collaborators the HTTP server is built from.
type serverDeps struct {
	store         storage.Store
	publisher     events.Publisher
	metrics       *observability.Metrics
	allowedOrigin string
}

// newServerHandler mounts every Connect service plus /healthz and /metrics,
// wrapped in CORS and request logging.
func newServerHandler(deps serverDeps) http.Handler {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(deps.metrics),
	)

	mux := http.NewServeMux()
	mux.Handle(service.NewListServiceHandler(service.NewListService(deps.store), interceptors))
	mux.Handle(service.NewParticipantServiceHandler(service.NewParticipantService(deps.store), interceptors))
	mux.Handle(service.NewExpenseServiceHandler(
		service.NewExpenseService(deps.store, deps.publisher, deps.metrics), interceptors))
	mux.Handle(service.NewBalanceServiceHandler(
		service.NewBalanceService(deps.store, deps.publisher, deps.metrics), interceptors))

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", deps.metrics.Handler())

	return middleware.RequestLogger(middleware.CORS(deps.allowedOrigin)(mux))
}

// withH2C serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
func withH2C(h http.Handler) http.Handler {
	return h2c.NewHandler(h, &http2.Server{})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
