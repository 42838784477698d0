package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// MaxRangeSpan bounds how wide a selected date range may be
const MaxRangeSpan = 100 * 365 * 24 * time.Hour

// CoordinatorConfig holds configuration for Coordinator
type CoordinatorConfig struct {
	palette    model.Palette
	rangeStart time.Time
	rangeEnd   time.Time
	week       types.WeekKey
}

// CoordinatorOption is a functional option for configuring Coordinator
type CoordinatorOption func(*CoordinatorConfig)

// WithPalette sets the bar chart colors
func WithPalette(p model.Palette) CoordinatorOption {
	return func(c *CoordinatorConfig) {
		c.palette = p.WithDefaults()
	}
}

// WithDefaultRange overrides the initial date range. A range rejected by
// ValidateRange is ignored.
func WithDefaultRange(start, end time.Time) CoordinatorOption {
	return func(c *CoordinatorConfig) {
		c.rangeStart = start
		c.rangeEnd = end
	}
}

// WithDefaultWeek overrides the initial selected week
func WithDefaultWeek(key types.WeekKey) CoordinatorOption {
	return func(c *CoordinatorConfig) {
		c.week = key
	}
}

// Coordinator owns the shared selection and derives all three views from it
type Coordinator struct {
	dataset *model.Dataset
	ages    *model.AgeIndex
	palette model.Palette

	mu        sync.Mutex
	selection model.Selection
}

// NewCoordinator builds the age index once and sets up the initial selection
func NewCoordinator(ds *model.Dataset, opts ...CoordinatorOption) *Coordinator {
	if ds == nil {
		ds = &model.Dataset{Records: []*model.Record{}}
	}

	cfg := &CoordinatorConfig{palette: model.DefaultPalette()}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Coordinator{
		dataset: ds,
		ages:    IndexOpenAges(ds.Records, ds.LoadedAt),
		palette: cfg.palette,
	}
	c.selection = c.defaultSelection()

	// An out-of-bounds default range keeps the computed one
	if ValidateRange(cfg.rangeStart, cfg.rangeEnd) == nil {
		c.selection.RangeStart = cfg.rangeStart
		c.selection.RangeEnd = cfg.rangeEnd
		c.selection = c.selection.Normalized()
	}
	if !cfg.week.IsZero() {
		c.selection.Week = cfg.week
	}

	return c
}

// defaultSelection spans the weeks of the earliest and latest record and
// picks the latest week that has open records
func (c *Coordinator) defaultSelection() model.Selection {
	var sel model.Selection

	minT, maxT, ok := c.dataset.CreatedBounds()
	if !ok {
		return sel
	}
	sel.RangeStart = types.FloorWeek(minT)
	sel.RangeEnd = types.WeekEnd(maxT)

	if latest, found := c.ages.Latest(); found {
		sel.Week = latest
	} else {
		sel.Week = types.WeekKeyOf(maxT)
	}

	return sel
}

// Selection returns a copy of the current selection
func (c *Coordinator) Selection() model.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// Dataset returns the dataset the coordinator was built from
func (c *Coordinator) Dataset(ctx context.Context) (*model.Dataset, error) {
	return c.dataset, nil
}

// ValidateRange checks both bounds are set and the range spans at most
// MaxRangeSpan in either order
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return goerr.New("range start and end are required",
			goerr.V("start", start),
			goerr.V("end", end),
			goerr.T(model.ErrTagInvalidSelection))
	}
	if start.After(end) {
		start, end = end, start
	}
	if start.AddDate(0, 0, int(MaxRangeSpan/(24*time.Hour))).Before(end) {
		return goerr.New("range is too wide",
			goerr.V("start", start),
			goerr.V("end", end),
			goerr.V("max_days", int(MaxRangeSpan/(24*time.Hour))),
			goerr.T(model.ErrTagInvalidSelection))
	}
	return nil
}

// SetRange validates and applies a date range, then recomputes the views
func (c *Coordinator) SetRange(ctx context.Context, start, end time.Time) (*model.Views, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}
	if start.After(end) {
		start, end = end, start
	}

	c.mu.Lock()
	c.selection.RangeStart = start.UTC()
	c.selection.RangeEnd = end.UTC()
	sel := c.selection
	c.mu.Unlock()

	ctxlog.From(ctx).Debug("Range selected",
		slog.Time("start", sel.RangeStart),
		slog.Time("end", sel.RangeEnd),
	)

	return c.compute(sel), nil
}

// SetWeek validates and applies a week selection, then recomputes the views
func (c *Coordinator) SetWeek(ctx context.Context, key types.WeekKey) (*model.Views, error) {
	if err := key.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid week selection",
			goerr.V("week", key.String()),
			goerr.T(model.ErrTagInvalidSelection))
	}

	c.mu.Lock()
	c.selection.Week = key
	sel := c.selection
	c.mu.Unlock()

	ctxlog.From(ctx).Debug("Week selected", slog.String("week", key.String()))

	return c.compute(sel), nil
}

// Views recomputes the views for the current selection
func (c *Coordinator) Views(ctx context.Context) (*model.Views, error) {
	return c.compute(c.Selection()), nil
}

func (c *Coordinator) compute(sel model.Selection) *model.Views {
	records := c.dataset.Records

	return &model.Views{
		DatasetID: c.dataset.ID,
		Selection: sel,
		Bar: model.BarView{
			Buckets: AggregateWeekly(records, sel.RangeStart, sel.RangeEnd),
			Colors:  c.palette,
		},
		Scatter: model.ScatterView{
			Week:          sel.Week,
			Points:        c.ages.PointsForWeek(sel.Week),
			WeekdayDomain: [2]int{0, 6},
			Color:         c.palette.Open,
		},
		Pie: model.PieView{
			Week:   sel.Week,
			Counts: LabelCountsForWeek(records, sel.Week),
		},
		OpenWeeks: c.ages.Weeks(),
	}
}
