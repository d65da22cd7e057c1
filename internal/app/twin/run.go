package twin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	platformobservability "github.com/Apurer/petstore-contract-suite/internal/platform/observability"
)

// Run boots the twin HTTP server and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load twin config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	t, err := New(ctx, cfg, WithInstruments(instruments))
	if err != nil {
		return err
	}
	defer t.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           t.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Petstore twin listening", slog.String("addr", srv.Addr), slog.String("basePath", BaseURL("")))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Petstore twin exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Petstore twin shutting down")
	return srv.Shutdown(shutdownCtx)
}
