package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/goalpilot/goalpilot/internal/domain"
)

const shutdownTimeout = 10 * time.Second

// NewHandler builds the API handler with CORS and request logging.
func NewHandler(log *slog.Logger, uc UseCases, cfg domain.ServerConfig) http.Handler {
	mux := http.NewServeMux()
	Register(mux, log, uc, cfg.BasePath, cfg.Timeout)
	return cors.AllowAll().Handler(logRequests(log, mux))
}

// Serve runs the server on ln until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, log *slog.Logger, ln net.Listener, handler http.Handler, cfg domain.ServerConfig) error {
	server := http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server", "address", ln.Addr().String(), "base_path", cfg.BasePath)
		errCh <- server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
