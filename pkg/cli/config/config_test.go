package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/prpulse/pkg/cli/config"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/service/plot"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prpulse.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Run("partial palette is filled with defaults", func(t *testing.T) {
		path := writeFile(t, `
palette:
  open: "#112233"
defaults:
  start: "2025-04-01"
  end: "2025-04-30"
  week: "2025-W15"
`)
		cfg, err := config.LoadConfigFromFile(path)
		gt.NoError(t, err).Required()
		gt.Equal(t, "#112233", cfg.Palette.Open)
		gt.Equal(t, model.DefaultPalette().Closed, cfg.Palette.Closed)
		gt.Equal(t, model.DefaultPalette().Merged, cfg.Palette.Merged)
		gt.Equal(t, "2025-W15", cfg.Defaults.Week)
	})

	t.Run("invalid color", func(t *testing.T) {
		path := writeFile(t, "palette:\n  merged: green\n")
		_, err := config.LoadConfigFromFile(path)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})

	t.Run("invalid week", func(t *testing.T) {
		path := writeFile(t, "defaults:\n  week: 2025-W99\n")
		_, err := config.LoadConfigFromFile(path)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})

	t.Run("broken YAML", func(t *testing.T) {
		path := writeFile(t, "palette: [\n")
		_, err := config.LoadConfigFromFile(path)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		gt.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := config.LoadConfigFromFile("")
		gt.Error(t, err)
	})
}

func TestDataset(t *testing.T) {
	t.Run("fixed clock", func(t *testing.T) {
		d := config.Dataset{Now: "2025-04-11T10:00:00Z"}
		clock, err := d.Clock()
		gt.NoError(t, err).Required()
		gt.True(t, clock().Equal(time.Date(2025, 4, 11, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("invalid now", func(t *testing.T) {
		d := config.Dataset{Now: "yesterday"}
		_, err := d.Clock()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})

	t.Run("no config file gives defaults", func(t *testing.T) {
		d := config.Dataset{}
		cfg, err := d.LoadConfig()
		gt.NoError(t, err).Required()
		gt.Equal(t, model.DefaultPalette(), cfg.Palette)
	})
}

func TestSelectionOptions(t *testing.T) {
	t.Run("no flags and no defaults", func(t *testing.T) {
		s := config.Selection{}
		opts, err := s.Options(nil)
		gt.NoError(t, err).Required()
		gt.Equal(t, 1, len(opts))
	})

	t.Run("flags override file defaults", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.Defaults.Week = "2025-W10"
		s := config.Selection{Start: "2025-04-01", End: "2025-04-30", Week: "2025-W15"}
		opts, err := s.Options(cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, 3, len(opts))
	})

	t.Run("file defaults alone", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.Defaults.Week = "2025-W10"
		s := config.Selection{}
		opts, err := s.Options(cfg)
		gt.NoError(t, err).Required()
		gt.Equal(t, 2, len(opts))
	})

	t.Run("start without end", func(t *testing.T) {
		s := config.Selection{Start: "2025-04-01"}
		_, err := s.Options(nil)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidSelection))
	})

	t.Run("range wider than the limit", func(t *testing.T) {
		s := config.Selection{Start: "1900-01-01", End: "2300-01-01"}
		_, err := s.Options(nil)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidSelection))
	})

	t.Run("wide range from the file", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.Defaults.Start, cfg.Defaults.End = "1900-01-01", "2300-01-01"
		s := config.Selection{}
		_, err := s.Options(cfg)
		gt.Error(t, err)
	})

	t.Run("invalid week", func(t *testing.T) {
		s := config.Selection{Week: "W15"}
		_, err := s.Options(nil)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidSelection))
	})
}

func TestRenderConfigure(t *testing.T) {
	t.Run("svg", func(t *testing.T) {
		r := config.Render{Format: "svg", Width: 800, Height: 300}
		renderer, err := r.Configure()
		gt.NoError(t, err).Required()
		gt.Equal(t, plot.FormatSVG, renderer.Format())
	})

	t.Run("unknown format", func(t *testing.T) {
		r := config.Render{Format: "gif", Width: 800, Height: 300}
		_, err := r.Configure()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})

	t.Run("non-positive size", func(t *testing.T) {
		r := config.Render{Format: "png", Width: 0, Height: 300}
		_, err := r.Configure()
		gt.Error(t, err)
	})
}
