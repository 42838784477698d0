package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// Dashboard coordinates the shared selection and derives the views
type Dashboard interface {
	// Views recomputes the views for the current selection
	Views(ctx context.Context) (*model.Views, error)
	// SetRange applies a date range and recomputes the views
	SetRange(ctx context.Context, start, end time.Time) (*model.Views, error)
	// SetWeek applies a week selection and recomputes the views
	SetWeek(ctx context.Context, key types.WeekKey) (*model.Views, error)
	// Dataset returns the dataset the views are computed from
	Dataset(ctx context.Context) (*model.Dataset, error)
	// Reload reads the source again, keeping the current selection
	Reload(ctx context.Context) (*model.Dataset, error)
}
