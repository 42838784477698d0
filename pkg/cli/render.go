package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/cli/config"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var (
		datasetCfg   config.Dataset
		selectionCfg config.Selection
		renderCfg    config.Render
	)

	flags := joinFlags(
		datasetCfg.Flags(),
		selectionCfg.Flags(),
		renderCfg.Flags(),
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Write bar, scatter and pie chart images",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Info("Rendering charts",
				slog.Any("dataset", datasetCfg),
				slog.Any("selection", selectionCfg),
				slog.Any("render", renderCfg),
			)

			renderer, err := renderCfg.Configure()
			if err != nil {
				return err
			}

			dashboard, repo, err := openDashboard(ctx, &datasetCfg, &selectionCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			views, err := dashboard.Views(ctx)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(renderCfg.Out, 0o755); err != nil {
				return goerr.Wrap(err, "failed to create output directory", goerr.V("out", renderCfg.Out))
			}

			written, err := writeCharts(ctx, renderer, views, renderCfg.Out, string(renderer.Format()))
			if err != nil {
				return err
			}

			logger.Info("Charts rendered", slog.Any("files", written))
			return nil
		},
	}
}

// writeCharts writes one file per non-empty view and returns the paths
// written. Empty views are skipped.
func writeCharts(ctx context.Context, renderer interfaces.Renderer, views *model.Views, dir, ext string) ([]string, error) {
	charts := []struct {
		name   string
		render func(f *os.File) error
	}{
		{"bar", func(f *os.File) error { return renderer.RenderBar(f, &views.Bar) }},
		{"scatter", func(f *os.File) error { return renderer.RenderScatter(f, &views.Scatter) }},
		{"pie", func(f *os.File) error { return renderer.RenderPie(f, &views.Pie) }},
	}

	written := []string{}
	for _, chart := range charts {
		path := filepath.Join(dir, chart.name+"."+ext)
		if err := writeChart(path, chart.render); err != nil {
			if errors.Is(err, model.ErrEmptyView) {
				ctxlog.From(ctx).Info("Skipped empty chart", slog.String("chart", chart.name))
				continue
			}
			return written, goerr.Wrap(err, "failed to write chart", goerr.V("path", path))
		}
		written = append(written, path)
	}
	return written, nil
}

func writeChart(path string, render func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = goerr.Wrap(cerr, "failed to close file")
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return render(f)
}
