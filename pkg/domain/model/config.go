package model

import (
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Palette is the fixed status to color mapping shared by all renderers
type Palette struct {
	Open   string `yaml:"open" json:"open"`
	Closed string `yaml:"closed" json:"closed"`
	Merged string `yaml:"merged" json:"merged"`
}

// DefaultPalette returns the built-in colors
func DefaultPalette() Palette {
	return Palette{
		Open:   "#5b8fca",
		Closed: "#e9984b",
		Merged: "#8abf73",
	}
}

// Color returns the hex color for a status
func (p Palette) Color(status types.Status) string {
	switch status {
	case types.StatusOpen:
		return p.Open
	case types.StatusClosed:
		return p.Closed
	case types.StatusMerged:
		return p.Merged
	default:
		return "#999999"
	}
}

// WithDefaults fills unset colors from DefaultPalette
func (p Palette) WithDefaults() Palette {
	def := DefaultPalette()
	if p.Open == "" {
		p.Open = def.Open
	}
	if p.Closed == "" {
		p.Closed = def.Closed
	}
	if p.Merged == "" {
		p.Merged = def.Merged
	}
	return p
}

// Validate checks every color is #rrggbb
func (p Palette) Validate() error {
	for _, status := range types.Statuses {
		if c := p.Color(status); !hexColorPattern.MatchString(c) {
			return goerr.New("palette color must be #rrggbb",
				goerr.V("status", status),
				goerr.V("color", c),
				goerr.T(ErrTagInvalidConfig))
		}
	}
	return nil
}

// SelectionDefaults overrides the computed initial selection
type SelectionDefaults struct {
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
	Week  string `yaml:"week,omitempty"`
}

// Range returns the parsed default range; ok is false when either bound
// is unset
func (d SelectionDefaults) Range() (start, end time.Time, ok bool, err error) {
	if d.Start == "" || d.End == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	if start, err = ParseSelectionTime(d.Start); err != nil {
		return time.Time{}, time.Time{}, false, goerr.Wrap(err, "invalid default start")
	}
	if end, err = ParseSelectionTime(d.End); err != nil {
		return time.Time{}, time.Time{}, false, goerr.Wrap(err, "invalid default end")
	}
	return start, end, true, nil
}

// WeekKey returns the parsed default week; ok is false when unset
func (d SelectionDefaults) WeekKey() (types.WeekKey, bool, error) {
	if d.Week == "" {
		return types.WeekKey{}, false, nil
	}
	key, err := types.ParseWeekKey(d.Week)
	if err != nil {
		return types.WeekKey{}, false, goerr.Wrap(err, "invalid default week")
	}
	return key, true, nil
}

// Config is the optional YAML configuration file
type Config struct {
	Palette  Palette           `yaml:"palette"`
	Defaults SelectionDefaults `yaml:"defaults,omitempty"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Palette.WithDefaults().Validate(); err != nil {
		return goerr.Wrap(err, "invalid palette", goerr.T(ErrTagInvalidConfig))
	}
	if _, _, _, err := c.Defaults.Range(); err != nil {
		return goerr.Wrap(err, "invalid defaults", goerr.T(ErrTagInvalidConfig))
	}
	if _, _, err := c.Defaults.WeekKey(); err != nil {
		return goerr.Wrap(err, "invalid defaults", goerr.T(ErrTagInvalidConfig))
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{Palette: DefaultPalette()}
}
