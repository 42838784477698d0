package interfaces

import (
	"context"

	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// Repository holds loaded dataset snapshots
type Repository interface {
	// PutDataset stores a snapshot and makes it current
	PutDataset(ctx context.Context, ds *model.Dataset) error
	// GetDataset retrieves a snapshot by ID
	GetDataset(ctx context.Context, id types.DatasetID) (*model.Dataset, error)
	// CurrentDataset returns the most recently stored snapshot
	CurrentDataset(ctx context.Context) (*model.Dataset, error)

	// Close releases resources
	Close() error
}
