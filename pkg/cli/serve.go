package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/cli/config"
	controller "github.com/secmon-lab/prpulse/pkg/controller/http"
	"github.com/secmon-lab/prpulse/pkg/service/plot"
	"github.com/secmon-lab/prpulse/pkg/service/terminal"
	"github.com/secmon-lab/prpulse/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		datasetCfg   config.Dataset
		selectionCfg config.Selection
	)

	flags := joinFlags(
		serverCfg.Flags(),
		datasetCfg.Flags(),
		selectionCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server with the interactive dashboard",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting prpulse server",
				slog.Any("server", serverCfg),
				slog.Any("dataset", datasetCfg),
				slog.Any("selection", selectionCfg),
			)

			dashboard, repo, err := openDashboard(ctx, &datasetCfg, &selectionCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			renderers := map[string]controller.ChartRenderer{
				string(plot.FormatPNG): plot.New(plot.WithFormat(plot.FormatPNG)),
				string(plot.FormatSVG): plot.New(plot.WithFormat(plot.FormatSVG)),
				"txt":                  terminal.New(),
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, dashboard, renderers)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if serverCfg.ReloadInterval > 0 {
				if _, err := async.Every(ctx, serverCfg.ReloadInterval, func(ctx context.Context) error {
					_, err := dashboard.Reload(ctx)
					return err
				}); err != nil {
					return err
				}
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
