package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

func TestPaletteValidate(t *testing.T) {
	t.Run("default palette is valid", func(t *testing.T) {
		gt.NoError(t, model.DefaultPalette().Validate())
	})

	t.Run("missing colors are filled from defaults", func(t *testing.T) {
		p := model.Palette{Open: "#000000"}.WithDefaults()
		gt.Equal(t, "#000000", p.Open)
		gt.Equal(t, model.DefaultPalette().Closed, p.Closed)
		gt.Equal(t, model.DefaultPalette().Merged, p.Merged)
	})

	t.Run("error on named color", func(t *testing.T) {
		p := model.DefaultPalette()
		p.Merged = "green"
		err := p.Validate()
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidConfig)).True()
	})
}

func TestPaletteColor(t *testing.T) {
	p := model.DefaultPalette()
	gt.Equal(t, "#5b8fca", p.Color(types.StatusOpen))
	gt.Equal(t, "#e9984b", p.Color(types.StatusClosed))
	gt.Equal(t, "#8abf73", p.Color(types.StatusMerged))
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		cfg := model.Config{
			Palette:  model.DefaultPalette(),
			Defaults: model.SelectionDefaults{Start: "2025-04-01", End: "2025-04-30", Week: "2025-W14"},
		}
		gt.NoError(t, cfg.Validate())
	})

	t.Run("empty configuration uses defaults", func(t *testing.T) {
		cfg := model.Config{}
		gt.NoError(t, cfg.Validate())
	})

	t.Run("error on invalid default week", func(t *testing.T) {
		cfg := model.Config{Defaults: model.SelectionDefaults{Week: "2025-W99"}}
		gt.Error(t, cfg.Validate())
	})

	t.Run("error on invalid default start", func(t *testing.T) {
		cfg := model.Config{Defaults: model.SelectionDefaults{Start: "April", End: "2025-04-30"}}
		gt.Error(t, cfg.Validate())
	})
}

func TestSelectionDefaultsRange(t *testing.T) {
	t.Run("unset when one bound is missing", func(t *testing.T) {
		_, _, ok, err := model.SelectionDefaults{Start: "2025-04-01"}.Range()
		gt.NoError(t, err)
		gt.False(t, ok)
	})

	t.Run("parses both bounds", func(t *testing.T) {
		start, end, ok, err := model.SelectionDefaults{Start: "2025-04-01", End: "2025-04-30"}.Range()
		gt.NoError(t, err)
		gt.True(t, ok)
		gt.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), start)
		gt.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), end)
	})
}

func TestParseSelectionTime(t *testing.T) {
	t.Run("date is midnight UTC", func(t *testing.T) {
		got, err := model.ParseSelectionTime("2025-04-07")
		gt.NoError(t, err)
		gt.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("RFC3339 is converted to UTC", func(t *testing.T) {
		got, err := model.ParseSelectionTime("2025-04-07T09:00:00+09:00")
		gt.NoError(t, err)
		gt.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("error is tagged as invalid selection", func(t *testing.T) {
		_, err := model.ParseSelectionTime("07/04/2025")
		gt.Error(t, err)
		gt.B(t, goerr.HasTag(err, model.ErrTagInvalidSelection)).True()
	})

	t.Run("error on empty", func(t *testing.T) {
		_, err := model.ParseSelectionTime("  ")
		gt.Error(t, err)
	})
}

func TestSelectionNormalized(t *testing.T) {
	a := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	s := model.Selection{RangeStart: b, RangeEnd: a}.Normalized()
	gt.Equal(t, a, s.RangeStart)
	gt.Equal(t, b, s.RangeEnd)
}
