package usecase

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// Source opens the CSV input
type Source func(ctx context.Context) (io.ReadCloser, error)

// FileSource reads the CSV from a file path
func FileSource(path string) Source {
	return func(ctx context.Context) (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open CSV file", goerr.V("path", path))
		}
		return f, nil
	}
}

// Dashboard loads datasets into the repository and serves views through a
// Coordinator bound to the current dataset
type Dashboard struct {
	repo   interfaces.Repository
	source Source
	loader *Loader
	opts   []CoordinatorOption

	reloadMu sync.Mutex

	mu    sync.RWMutex
	coord *Coordinator
}

var _ interfaces.Dashboard = (*Dashboard)(nil)

// NewDashboard performs the initial load
func NewDashboard(ctx context.Context, repo interfaces.Repository, source Source, loader *Loader, opts ...CoordinatorOption) (*Dashboard, error) {
	if loader == nil {
		loader = NewLoader()
	}
	d := &Dashboard{
		repo:   repo,
		source: source,
		loader: loader,
		opts:   opts,
	}

	ds, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	d.coord = NewCoordinator(ds, opts...)

	return d, nil
}

func (d *Dashboard) load(ctx context.Context) (*model.Dataset, error) {
	rc, err := d.source(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	ds, err := d.loader.Load(ctx, rc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset")
	}
	if err := d.repo.PutDataset(ctx, ds); err != nil {
		return nil, goerr.Wrap(err, "failed to store dataset", goerr.V("id", ds.ID))
	}
	return ds, nil
}

// Reload reads the source again and rebuilds the coordinator. The current
// selection carries over. Reloads run one at a time, and selection changes
// wait while the coordinator is swapped.
func (d *Dashboard) Reload(ctx context.Context) (*model.Dataset, error) {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	ds, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	sel := d.coord.Selection()
	opts := append([]CoordinatorOption{}, d.opts...)
	if !sel.RangeStart.IsZero() && !sel.RangeEnd.IsZero() {
		opts = append(opts, WithDefaultRange(sel.RangeStart, sel.RangeEnd))
	}
	if !sel.Week.IsZero() {
		opts = append(opts, WithDefaultWeek(sel.Week))
	}
	d.coord = NewCoordinator(ds, opts...)
	d.mu.Unlock()

	ctxlog.From(ctx).Info("Dataset reloaded", slog.String("id", ds.ID.String()))
	return ds, nil
}

// Dataset returns the dataset the current views are computed from
func (d *Dashboard) Dataset(ctx context.Context) (*model.Dataset, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coord.Dataset(ctx)
}

// Views recomputes the views for the current selection
func (d *Dashboard) Views(ctx context.Context) (*model.Views, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coord.Views(ctx)
}

// SetRange applies a date range
func (d *Dashboard) SetRange(ctx context.Context, start, end time.Time) (*model.Views, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coord.SetRange(ctx, start, end)
}

// SetWeek applies a week selection
func (d *Dashboard) SetWeek(ctx context.Context, key types.WeekKey) (*model.Views, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.coord.SetWeek(ctx, key)
}
