package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/cli/config"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/service/terminal"
	"github.com/urfave/cli/v3"
)

func cmdShow() *cli.Command {
	var (
		datasetCfg   config.Dataset
		selectionCfg config.Selection
		width        int
	)

	flags := joinFlags(
		datasetCfg.Flags(),
		selectionCfg.Flags(),
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Usage:       "Width of the longest bar in cells",
				Value:       40,
				Destination: &width,
			},
		},
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Print the three views in the terminal",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			dashboard, repo, err := openDashboard(ctx, &datasetCfg, &selectionCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			ds, err := dashboard.Dataset(ctx)
			if err != nil {
				return err
			}
			views, err := dashboard.Views(ctx)
			if err != nil {
				return err
			}

			return printViews(os.Stdout, terminal.New(terminal.WithWidth(width)), ds, views)
		},
	}
}

func printViews(w io.Writer, renderer interfaces.Renderer, ds *model.Dataset, views *model.Views) error {
	if _, err := fmt.Fprintf(w, "%d items loaded, %d rows dropped\n\n", ds.Len(), ds.Report.Dropped); err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}

	sections := []struct {
		empty  string
		render func() error
	}{
		{"No items in the selected range", func() error { return renderer.RenderBar(w, &views.Bar) }},
		{"No open items created in " + views.Selection.Week.String(), func() error { return renderer.RenderScatter(w, &views.Scatter) }},
		{"No items created in " + views.Selection.Week.String(), func() error { return renderer.RenderPie(w, &views.Pie) }},
	}

	for _, s := range sections {
		err := s.render()
		if errors.Is(err, model.ErrEmptyView) {
			_, err = fmt.Fprintln(w, s.empty)
		}
		if err != nil {
			return goerr.Wrap(err, "failed to print view")
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return goerr.Wrap(err, "failed to print view")
		}
	}
	return nil
}
