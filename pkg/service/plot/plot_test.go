package plot_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
	"github.com/secmon-lab/prpulse/pkg/service/plot"
)

func buckets(n int) []model.WeekBucket {
	start := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	result := make([]model.WeekBucket, n)
	for i := range result {
		ws := start.AddDate(0, 0, 7*i)
		result[i] = model.WeekBucket{
			Key:       types.WeekKeyOf(ws),
			WeekStart: ws,
			Open:      i % 3,
			Closed:    1,
			Merged:    i % 2,
		}
	}
	return result
}

func sampleScatter() *model.ScatterView {
	return &model.ScatterView{
		Week: types.WeekKey{Year: 2025, Week: 14},
		Points: []model.AgePoint{
			{ID: 1, WeekdayIndex: 0, AgeDays: 10.5},
			{ID: 2, WeekdayIndex: 3, AgeDays: 7.25},
			{ID: 3, WeekdayIndex: 6, AgeDays: 4},
		},
		WeekdayDomain: [2]int{0, 6},
	}
}

func samplePie() *model.PieView {
	return &model.PieView{
		Week: types.WeekKey{Year: 2025, Week: 14},
		Counts: []model.LabelCount{
			{Label: "bug", Count: 2},
			{Label: model.NoLabel, Count: 1},
			{Label: "ui", Count: 1},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := plot.ParseFormat("PNG")
	gt.NoError(t, err)
	gt.Equal(t, plot.FormatPNG, f)
	gt.Equal(t, "image/png", f.ContentType())

	f, err = plot.ParseFormat(" svg ")
	gt.NoError(t, err)
	gt.Equal(t, plot.FormatSVG, f)
	gt.Equal(t, "image/svg+xml", f.ContentType())

	_, err = plot.ParseFormat("gif")
	gt.Error(t, err)
}

func TestRenderPNG(t *testing.T) {
	r := plot.New(plot.WithSize(640, 320))
	gt.Equal(t, plot.FormatPNG, r.Format())

	t.Run("bar", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, r.RenderBar(&buf, &model.BarView{Buckets: buckets(20), Colors: model.DefaultPalette()})).Required()
		gt.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})

	t.Run("single week bar", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, r.RenderBar(&buf, &model.BarView{Buckets: buckets(1)})).Required()
		gt.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})

	t.Run("all zero bar", func(t *testing.T) {
		zero := buckets(3)
		for i := range zero {
			zero[i].Open, zero[i].Closed, zero[i].Merged = 0, 0, 0
		}
		var buf bytes.Buffer
		gt.NoError(t, r.RenderBar(&buf, &model.BarView{Buckets: zero})).Required()
		gt.A(t, buf.Bytes()).Longer(0)
	})

	t.Run("scatter", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, r.RenderScatter(&buf, sampleScatter())).Required()
		gt.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})

	t.Run("pie", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, r.RenderPie(&buf, samplePie())).Required()
		gt.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	})
}

func TestRenderSVG(t *testing.T) {
	r := plot.New(plot.WithFormat(plot.FormatSVG))
	gt.Equal(t, "image/svg+xml", r.ContentType())

	var buf bytes.Buffer
	gt.NoError(t, r.RenderBar(&buf, &model.BarView{Buckets: buckets(4), Colors: model.DefaultPalette()})).Required()
	gt.S(t, buf.String()).Contains("<svg")
	gt.S(t, buf.String()).Contains("2025-W14")

	buf.Reset()
	gt.NoError(t, r.RenderPie(&buf, samplePie())).Required()
	gt.S(t, buf.String()).Contains("bug (2)")
	gt.S(t, buf.String()).Contains("(no label) (1)")
}

func TestRenderEmpty(t *testing.T) {
	r := plot.New()
	var buf bytes.Buffer

	gt.True(t, errors.Is(r.RenderBar(&buf, &model.BarView{}), model.ErrEmptyView))
	gt.True(t, errors.Is(r.RenderScatter(&buf, &model.ScatterView{}), model.ErrEmptyView))
	gt.True(t, errors.Is(r.RenderPie(&buf, &model.PieView{}), model.ErrEmptyView))
	gt.True(t, errors.Is(r.RenderBar(&buf, nil), model.ErrEmptyView))
	gt.Equal(t, 0, buf.Len())
}

func TestRenderDoesNotModifyView(t *testing.T) {
	view := &model.BarView{Buckets: buckets(5), Colors: model.DefaultPalette()}
	before := append([]model.WeekBucket{}, view.Buckets...)

	var buf bytes.Buffer
	gt.NoError(t, plot.New().RenderBar(&buf, view))
	gt.Equal(t, before, view.Buckets)
}

func TestWeekTicks(t *testing.T) {
	t.Run("all weeks labeled when few", func(t *testing.T) {
		ticks := plot.WeekTicks(buckets(5), plot.MaxWeekTicks)
		gt.Equal(t, 5, len(ticks))
		gt.Equal(t, "2025-W14", ticks[0].Label)
		gt.Equal(t, "2025-W18", ticks[4].Label)
	})

	t.Run("thinned to the limit", func(t *testing.T) {
		for _, n := range []int{13, 24, 52, 100} {
			ticks := plot.WeekTicks(buckets(n), plot.MaxWeekTicks)
			gt.True(t, len(ticks) <= plot.MaxWeekTicks)
			gt.Equal(t, 0.0, ticks[0].Value)
			gt.Equal(t, "2025-W14", ticks[0].Label)
		}
	})

	t.Run("empty", func(t *testing.T) {
		gt.Equal(t, 0, len(plot.WeekTicks(nil, plot.MaxWeekTicks)))
	})
}
