package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/kidoikoiaki/internal/config"
	"github.com/mmynk/kidoikoiaki/internal/events"
	"github.com/mmynk/kidoikoiaki/internal/observability"
	"github.com/mmynk/kidoikoiaki/internal/storage/sqlite"
	"github.com/mmynk/kidoikoiaki/pkg/logging"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	EnvFile string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		Long: `Run the Connect API server.

Settings come from the environment (PORT, DB_PATH, LOG_LEVEL, LOG_FORMAT,
AMQP_URL, AMQP_EXCHANGE, SHUTDOWN_TIMEOUT, CORS_ALLOWED_ORIGIN). Variables
in --env-file are loaded first without overriding the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	if err := config.LoadDotenv(opts.EnvFile); err != nil {
		return WrapExitError(ExitCommandError, "failed to load env file", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logging.SetupWith(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: withH2C(newServerHandler(serverDeps{
			store:         store,
			publisher:     publisher,
			metrics:       observability.NewMetrics(),
			allowedOrigin: cfg.CORSAllowedOrigin,
		})),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serveUntilDone(ctx, srv, cfg.ShutdownTimeout)
}

// serveUntilDone runs srv until ctx is cancelled or the listener fails, then
// drains in-flight requests for at most timeout.
func serveUntilDone(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down", "timeout", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		slog.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// newPublisher connects to the broker when one is configured.
func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, events will not be published")
		return events.NopPublisher{}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	slog.Info("Publishing events", "exchange", cfg.AMQPExchange)

	return publisher, nil
}
