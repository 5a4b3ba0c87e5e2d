package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/baxter"
	httpadapter "github.com/aretw0/baxter/pkg/adapters/http"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Options
	// Addr overrides http.addr from the config.
	Addr string
}

// newServer builds the HTTP server for a.
func newServer(a *baxter.Assistant, addr string, logger *slog.Logger) *http.Server {
	opts := []httpadapter.Option{
		httpadapter.WithLogger(logger),
		httpadapter.WithVersion(baxter.Version),
	}
	if g := a.Gatherer(); g != nil {
		opts = append(opts, httpadapter.WithMetrics(g))
	}
	return &http.Server{
		Addr:              addr,
		Handler:           httpadapter.NewHandler(a.Chat(), a, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// listen runs srv until ctx is cancelled, then shuts it down gracefully.
func listen(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if sc, ok := ctx.(*SignalContext); ok && sc.Signal() != nil {
			logger.Info("Received signal, shutting down", "signal", sc.Signal().String())
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}

// Serve exposes the assistant over HTTP until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	a, logger, err := createAssistant(ctx, opts.Options, false)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := opts.Addr
	if addr == "" {
		addr = a.Config().HTTP.Addr
	}
	return listen(ctx, newServer(a, addr, logger), logger)
}
