package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/prpulse/pkg/cli/config"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/repository"
	"github.com/secmon-lab/prpulse/pkg/usecase"
)

// openDashboard loads the CSV and prepares the coordinator with the
// configured palette and initial selection
func openDashboard(ctx context.Context, datasetCfg *config.Dataset, selectionCfg *config.Selection) (*usecase.Dashboard, interfaces.Repository, error) {
	cfg, err := datasetCfg.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts, err := selectionCfg.Options(cfg)
	if err != nil {
		return nil, nil, err
	}
	clock, err := datasetCfg.Clock()
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewMemory(repository.WithRetention(datasetCfg.Retention))
	loader := usecase.NewLoader(usecase.WithClock(clock))

	dashboard, err := usecase.NewDashboard(ctx, repo, usecase.FileSource(datasetCfg.CSV), loader, opts...)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}

	ds, err := dashboard.Dataset(ctx)
	if err == nil {
		for _, a := range ds.Report.Anomalies {
			ctxlog.From(ctx).Debug("Input anomaly", slog.Any("anomaly", a))
		}
	}

	return dashboard, repo, nil
}
