package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Renderer draws views as styled text for a terminal
type Renderer struct {
	width int
}

var _ interfaces.Renderer = (*Renderer)(nil)

// Option is a functional option for configuring Renderer
type Option func(*Renderer)

// WithWidth sets the number of cells of the longest bar
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 2 {
			r.width = width
		}
	}
}

// New creates a terminal Renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{width: 40}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType returns the media type of rendered output
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return goerr.Wrap(err, "failed to write terminal output")
	}
	return nil
}

// RenderBar prints one stacked bar per week with per-status counts
func (r *Renderer) RenderBar(w io.Writer, v *model.BarView) error {
	if v == nil || v.IsEmpty() {
		return model.ErrEmptyView
	}

	colors := v.Colors.WithDefaults()
	highest := float64(v.MaxTotal())

	var b strings.Builder
	b.WriteString(header("Weekly items by status") + "\n")

	legend := make([]string, 0, len(types.Statuses))
	for _, status := range types.Statuses {
		legend = append(legend, colorStyle(colors.Color(status)).Render(filledBlock)+" "+string(status))
	}
	b.WriteString(strings.Join(legend, "  ") + "\n\n")

	rows := make([][]string, 0, len(v.Buckets))
	for _, bucket := range v.Buckets {
		var bar strings.Builder
		used := 0
		for _, status := range types.Statuses {
			n := cells(float64(bucket.Count(status)), highest, r.width)
			n = min(n, r.width-used)
			bar.WriteString(colorStyle(colors.Color(status)).Render(strings.Repeat(filledBlock, n)))
			used += n
		}
		bar.WriteString(styleDim.Render(strings.Repeat(emptyBlock, r.width-used)))

		rows = append(rows, []string{
			bucket.Key.String(),
			bar.String(),
			strconv.Itoa(bucket.Open),
			strconv.Itoa(bucket.Closed),
			strconv.Itoa(bucket.Merged),
			strconv.Itoa(bucket.Total()),
		})
	}
	b.WriteString(table([]string{"week", "", "open", "closed", "merged", "total"}, rows))

	return write(w, b.String())
}

// RenderScatter lists open items of the week grouped by weekday
func (r *Renderer) RenderScatter(w io.Writer, v *model.ScatterView) error {
	if v == nil || v.IsEmpty() {
		return model.ErrEmptyView
	}

	oldest := 0.0
	for _, p := range v.Points {
		oldest = max(oldest, p.AgeDays)
	}

	var b strings.Builder
	b.WriteString(header(fmt.Sprintf("Open item age, created %s", v.Week)) + "\n")

	open := colorStyle(v.PointColor())
	rows := make([][]string, 0, len(v.Points))
	for _, p := range v.Points {
		day := ""
		if p.WeekdayIndex >= 0 && p.WeekdayIndex < len(weekdayNames) {
			day = weekdayNames[p.WeekdayIndex]
		}
		rows = append(rows, []string{
			day,
			"#" + p.ID.String(),
			strconv.FormatFloat(p.AgeDays, 'f', 1, 64),
			open.Render(strings.Repeat(filledBlock, cells(p.AgeDays, oldest, r.width))),
		})
	}
	b.WriteString(table([]string{"weekday", "item", "age (days)", ""}, rows))

	return write(w, b.String())
}

// RenderPie prints label shares of the week, largest first
func (r *Renderer) RenderPie(w io.Writer, v *model.PieView) error {
	if v == nil || v.IsEmpty() || v.Total() == 0 {
		return model.ErrEmptyView
	}

	total := float64(v.Total())

	var b strings.Builder
	b.WriteString(header(fmt.Sprintf("Labels, created %s", v.Week)) + "\n")

	rows := make([][]string, 0, len(v.Counts))
	for _, c := range v.Counts {
		share := float64(c.Count) / total
		rows = append(rows, []string{
			c.Label,
			strconv.Itoa(c.Count),
			fmt.Sprintf("%3.0f%%", share*100),
			styleDim.Render(strings.Repeat(filledBlock, cells(float64(c.Count), total, r.width))),
		})
	}
	b.WriteString(table([]string{"label", "count", "share", ""}, rows))

	return write(w, b.String())
}
