package plot

import (
	"github.com/m-mizutani/goerr/v2"
	chart "github.com/wcharczuk/go-chart/v2"
)

const barWidth = 0.8

// stackSeries draws one status layer of the stacked bar chart. Bar i spans
// bases[i] to tops[i] in value space, centered on x = i.
type stackSeries struct {
	name  string
	style chart.Style
	bases []float64
	tops  []float64
}

var _ chart.Series = stackSeries{}

func (s stackSeries) GetName() string {
	return s.name
}

func (s stackSeries) GetYAxis() chart.YAxisType {
	return chart.YAxisPrimary
}

func (s stackSeries) GetStyle() chart.Style {
	return s.style
}

func (s stackSeries) Validate() error {
	if len(s.bases) != len(s.tops) {
		return goerr.New("stack bases and tops differ in length",
			goerr.V("series", s.name),
			goerr.V("bases", len(s.bases)),
			goerr.V("tops", len(s.tops)))
	}
	return nil
}

func (s stackSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)
	half := barWidth / 2

	for i := range s.tops {
		if s.tops[i] <= s.bases[i] {
			continue
		}
		left := canvasBox.Left + xrange.Translate(float64(i)-half)
		right := canvasBox.Left + xrange.Translate(float64(i)+half)
		top := canvasBox.Bottom - yrange.Translate(s.tops[i])
		bottom := canvasBox.Bottom - yrange.Translate(s.bases[i])

		r.SetFillColor(style.GetFillColor())
		r.SetStrokeColor(style.GetStrokeColor())
		r.SetStrokeWidth(style.GetStrokeWidth())
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()
	}
}
