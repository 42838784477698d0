package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image encoding supported by Renderer
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// MaxWeekTicks bounds the number of labeled weeks on the bar chart axis
const MaxWeekTicks = 12

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseFormat accepts "png" or "svg" in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", goerr.New("unsupported image format", goerr.V("format", s))
	}
}

// ContentType returns the MIME type of the encoded image
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Renderer draws views as PNG or SVG images
type Renderer struct {
	format Format
	width  int
	height int
}

var _ interfaces.Renderer = (*Renderer)(nil)

// Option is a functional option for configuring Renderer
type Option func(*Renderer)

// WithFormat sets the output encoding
func WithFormat(f Format) Option {
	return func(r *Renderer) {
		r.format = f
	}
}

// WithSize sets the image size in pixels
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// New creates a Renderer producing 960x400 PNG images unless configured
// otherwise
func New(opts ...Option) *Renderer {
	r := &Renderer{
		format: FormatPNG,
		width:  960,
		height: 400,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format returns the output encoding
func (r *Renderer) Format() Format {
	return r.format
}

// ContentType returns the MIME type of rendered images
func (r *Renderer) ContentType() string {
	return r.format.ContentType()
}

func (r *Renderer) provider() chart.RendererProvider {
	if r.format == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

func padding() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// RenderBar draws stacked weekly bars with one layer per status
func (r *Renderer) RenderBar(w io.Writer, v *model.BarView) error {
	if v == nil || v.IsEmpty() {
		return model.ErrEmptyView
	}

	n := len(v.Buckets)
	colors := v.Colors.WithDefaults()
	bases := make([]float64, n)

	series := make([]chart.Series, 0, len(types.Statuses))
	for _, status := range types.Statuses {
		s := stackSeries{
			name:  string(status),
			style: fillStyle(colors.Color(status)),
			bases: append([]float64{}, bases...),
			tops:  make([]float64, n),
		}
		for i, b := range v.Buckets {
			s.tops[i] = bases[i] + float64(b.Count(status))
		}
		copy(bases, s.tops)
		series = append(series, s)
	}

	yMax := niceCeil(float64(v.MaxTotal()))
	ch := chart.Chart{
		Title:      "Weekly items by status",
		Width:      r.width,
		Height:     r.height,
		Background: padding(),
		XAxis: chart.XAxis{
			Name:  "Week",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: withEdges(WeekTicks(v.Buckets, MaxWeekTicks), -0.5, float64(n)-0.5),
		},
		YAxis: chart.YAxis{
			Name:  "Items",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks: countTicks(yMax),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(r.provider(), w); err != nil {
		return goerr.Wrap(err, "failed to render bar chart", goerr.V("weeks", n))
	}
	return nil
}

// RenderScatter draws open-item ages against the weekday of creation
func (r *Renderer) RenderScatter(w io.Writer, v *model.ScatterView) error {
	if v == nil || v.IsEmpty() {
		return model.ErrEmptyView
	}

	xs := make([]float64, len(v.Points))
	ys := make([]float64, len(v.Points))
	yMin, yMax := 0.0, 0.0
	for i, p := range v.Points {
		xs[i] = float64(p.WeekdayIndex)
		ys[i] = p.AgeDays
		yMin = math.Min(yMin, p.AgeDays)
		yMax = math.Max(yMax, p.AgeDays)
	}
	yMax = niceCeil(yMax)
	if yMin < 0 {
		yMin = -niceCeil(-yMin)
	}

	xMin := float64(v.WeekdayDomain[0]) - 0.5
	xMax := float64(v.WeekdayDomain[1]) + 0.5
	xTicks := make([]chart.Tick, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		xTicks = append(xTicks, chart.Tick{Value: float64(i), Label: label})
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Open item age, created %s", v.Week),
		Width:      r.width,
		Height:     r.height,
		Background: padding(),
		XAxis: chart.XAxis{
			Name:  "Weekday",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: withEdges(xTicks, xMin, xMax),
		},
		YAxis: chart.YAxis{
			Name:  "Age (days)",
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    v.Week.String(),
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(hexColor(v.PointColor())),
			},
		},
	}

	if err := ch.Render(r.provider(), w); err != nil {
		return goerr.Wrap(err, "failed to render scatter chart", goerr.V("points", len(xs)))
	}
	return nil
}

// RenderPie draws the label distribution of the selected week
func (r *Renderer) RenderPie(w io.Writer, v *model.PieView) error {
	if v == nil || v.IsEmpty() || v.Total() == 0 {
		return model.ErrEmptyView
	}

	values := make([]chart.Value, 0, len(v.Counts))
	for _, c := range v.Counts {
		values = append(values, chart.Value{
			Value: float64(c.Count),
			Label: fmt.Sprintf("%s (%d)", c.Label, c.Count),
		})
	}

	size := min(r.width, r.height)
	pie := chart.PieChart{
		Title:  fmt.Sprintf("Labels, created %s", v.Week),
		Width:  size,
		Height: size,
		Values: values,
	}

	if err := pie.Render(r.provider(), w); err != nil {
		return goerr.Wrap(err, "failed to render pie chart", goerr.V("labels", len(values)))
	}
	return nil
}

// WeekTicks labels at most limit evenly spaced buckets. The first bucket is
// always labeled.
func WeekTicks(buckets []model.WeekBucket, limit int) []chart.Tick {
	if len(buckets) == 0 {
		return []chart.Tick{}
	}
	step := 1
	if limit > 0 && len(buckets) > limit {
		step = (len(buckets) + limit - 1) / limit
	}

	ticks := make([]chart.Tick, 0, len(buckets)/step+1)
	for i := 0; i < len(buckets); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: buckets[i].Key.String()})
	}
	return ticks
}

// withEdges adds unlabeled ticks at the axis bounds. The chart derives an
// axis range from its ticks when any are given.
func withEdges(ticks []chart.Tick, lo, hi float64) []chart.Tick {
	out := make([]chart.Tick, 0, len(ticks)+2)
	out = append(out, chart.Tick{Value: lo})
	out = append(out, ticks...)
	return append(out, chart.Tick{Value: hi})
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten, never below 1
func niceCeil(v float64) float64 {
	if v <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func countTicks(yMax float64) []chart.Tick {
	step := math.Max(1, niceCeil(yMax/5))
	if yMax/step > 5 {
		step *= 2
	}
	ticks := []chart.Tick{}
	for v := 0.0; v <= yMax; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%d", int(v))})
	}
	return ticks
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func fillStyle(hex string) chart.Style {
	c := hexColor(hex)
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 1,
		FillColor:   c,
	}
}

// pointStyle renders points only, with no connecting line
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}
