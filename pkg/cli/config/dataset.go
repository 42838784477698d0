package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Dataset holds input configuration
type Dataset struct {
	CSV        string
	Now        string
	ConfigFile string
	Retention  int
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "csv",
			Usage:       "Path to the pull request CSV export",
			Category:    "Dataset",
			Required:    true,
			Sources:     cli.EnvVars("PRPULSE_CSV"),
			Destination: &d.CSV,
		},
		&cli.StringFlag{
			Name:        "now",
			Usage:       "Reference time for open item ages (RFC3339, default: current time)",
			Category:    "Dataset",
			Sources:     cli.EnvVars("PRPULSE_NOW"),
			Destination: &d.Now,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "YAML file with palette and default selection",
			Category:    "Dataset",
			Sources:     cli.EnvVars("PRPULSE_CONFIG"),
			Destination: &d.ConfigFile,
		},
		&cli.IntFlag{
			Name:        "retention",
			Usage:       "Number of loaded dataset snapshots to keep in memory (0 keeps all)",
			Category:    "Dataset",
			Value:       4,
			Sources:     cli.EnvVars("PRPULSE_RETENTION"),
			Destination: &d.Retention,
		},
	}
}

// Clock returns the clock captured at load time
func (d *Dataset) Clock() (func() time.Time, error) {
	if d.Now == "" {
		return time.Now, nil
	}
	now, err := time.Parse(time.RFC3339, d.Now)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid --now, RFC3339 required",
			goerr.V("now", d.Now),
			goerr.T(model.ErrTagInvalidConfig))
	}
	return func() time.Time { return now }, nil
}

// LoadConfig reads the YAML configuration, or returns defaults when no file
// is given
func (d *Dataset) LoadConfig() (*model.Config, error) {
	if d.ConfigFile == "" {
		return model.DefaultConfig(), nil
	}
	return LoadConfigFromFile(d.ConfigFile)
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("csv", d.CSV),
		slog.String("now", d.Now),
		slog.String("config", d.ConfigFile),
		slog.Int("retention", d.Retention),
	)
}
