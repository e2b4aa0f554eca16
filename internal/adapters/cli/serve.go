package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mekanik-go/internal/adapters/api"
	"github.com/andrescamacho/mekanik-go/internal/adapters/metrics"
	appSavegame "github.com/andrescamacho/mekanik-go/internal/application/savegame"
)

const shutdownTimeout = 5 * time.Second

// newServeCommand creates the serve command
func newServeCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP and WebSocket",
		Long: `Run the JSON API and the WebSocket feed until interrupted.

Routes:
  GET  /api/state
  POST /api/commands/{install,remove,repair,damage,recalculate}
  GET  /ws         ship updates after every change
  GET  /metrics    when metrics are enabled

Every change is written to the autosave as it happens.`,
		Args: cobra.NoArgs,
		RunE: withSessionOptions(sessionOptions{withMetrics: true}, false, func(cmd *cobra.Command, s *session, args []string) error {
			ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if address == "" {
				address = s.cfg.Server.Address
			}
			return serve(ctx, s, address)
		}),
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (default from config)")
	return cmd
}

// serve blocks until ctx is cancelled, then shuts the server down and lets
// the background loops finish
func serve(ctx context.Context, s *session, address string) error {
	var wg sync.WaitGroup
	loopCtx, cancelLoops := context.WithCancel(ctx)
	defer func() {
		cancelLoops()
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		appSavegame.Autosave(loopCtx, s.store, s.repo)
	}()

	hub := api.NewHub(s.store)
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(loopCtx)
	}()

	if metrics.IsEnabled() {
		shipMetrics := metrics.NewShipMetricsCollector()
		if err := shipMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register ship metrics: %w", err)
		}
		shipMetrics.Start(loopCtx, s.store)
		defer shipMetrics.Stop()
	}

	server := &http.Server{
		Addr: address,
		Handler: api.NewServer(s.mediator, hub, metrics.GetRegistry(), s.logger).
			WithMetricsPath(s.cfg.Metrics.Path).
			Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Log("INFO", "Server listening", map[string]interface{}{
			"address": address,
			"metrics": metrics.IsEnabled(),
		})
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Log("INFO", "Shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
