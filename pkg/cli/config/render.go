package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/service/plot"
	"github.com/urfave/cli/v3"
)

// Render holds image output configuration
type Render struct {
	Out    string
	Format string
	Width  int
	Height int
}

// Flags returns CLI flags for Render configuration
func (r *Render) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Output directory for chart images",
			Category:    "Render",
			Value:       ".",
			Destination: &r.Out,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Image format (png, svg)",
			Category:    "Render",
			Value:       "png",
			Destination: &r.Format,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "Image width in pixels",
			Category:    "Render",
			Value:       960,
			Destination: &r.Width,
		},
		&cli.IntFlag{
			Name:        "height",
			Usage:       "Image height in pixels",
			Category:    "Render",
			Value:       400,
			Destination: &r.Height,
		},
	}
}

// Configure builds the image renderer
func (r *Render) Configure() (*plot.Renderer, error) {
	format, err := plot.ParseFormat(r.Format)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid --format", goerr.T(model.ErrTagInvalidConfig))
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, goerr.New("image size must be positive",
			goerr.V("width", r.Width),
			goerr.V("height", r.Height),
			goerr.T(model.ErrTagInvalidConfig))
	}
	return plot.New(plot.WithFormat(format), plot.WithSize(r.Width, r.Height)), nil
}

// LogValue returns structured log value
func (r Render) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("out", r.Out),
		slog.String("format", r.Format),
		slog.Int("width", r.Width),
		slog.Int("height", r.Height),
	)
}
