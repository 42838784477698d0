package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Selection holds the initial selection given on the command line
type Selection struct {
	Start string
	End   string
	Week  string
}

// Flags returns CLI flags for Selection configuration
func (s *Selection) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "start",
			Usage:       "Range start (YYYY-MM-DD or RFC3339)",
			Category:    "Selection",
			Destination: &s.Start,
		},
		&cli.StringFlag{
			Name:        "end",
			Usage:       "Range end (YYYY-MM-DD or RFC3339)",
			Category:    "Selection",
			Destination: &s.End,
		},
		&cli.StringFlag{
			Name:        "week",
			Usage:       "Selected ISO week (e.g. 2025-W14)",
			Category:    "Selection",
			Destination: &s.Week,
		},
	}
}

// Options merges the selection flags over the configuration file defaults
// and returns the coordinator options
func (s *Selection) Options(cfg *model.Config) ([]usecase.CoordinatorOption, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	defaults := cfg.Defaults
	if s.Start != "" || s.End != "" {
		if s.Start == "" || s.End == "" {
			return nil, goerr.New("--start and --end must be given together",
				goerr.V("start", s.Start),
				goerr.V("end", s.End),
				goerr.T(model.ErrTagInvalidSelection))
		}
		defaults.Start, defaults.End = s.Start, s.End
	}
	if s.Week != "" {
		defaults.Week = s.Week
	}

	opts := []usecase.CoordinatorOption{usecase.WithPalette(cfg.Palette)}

	start, end, ok, err := defaults.Range()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := usecase.ValidateRange(start, end); err != nil {
			return nil, goerr.Wrap(err, "invalid default range", goerr.T(model.ErrTagInvalidSelection))
		}
		opts = append(opts, usecase.WithDefaultRange(start, end))
	}

	week, ok, err := defaults.WeekKey()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid week selection", goerr.T(model.ErrTagInvalidSelection))
	}
	if ok {
		opts = append(opts, usecase.WithDefaultWeek(week))
	}

	return opts, nil
}

// LogValue returns structured log value
func (s Selection) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("start", s.Start),
		slog.String("end", s.End),
		slog.String("week", s.Week),
	)
}
