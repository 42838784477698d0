package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"github.com/secmon-lab/prpulse/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	datasets map[types.DatasetID]*model.Dataset
	current  types.DatasetID
	limit    int
	order    []types.DatasetID
}

// MemoryOption configures Memory
type MemoryOption func(*Memory)

// WithRetention keeps at most n snapshots; older ones are evicted first
func WithRetention(n int) MemoryOption {
	return func(m *Memory) {
		m.limit = n
	}
}

// NewMemory creates a new memory repository
func NewMemory(opts ...MemoryOption) interfaces.Repository {
	m := &Memory{
		datasets: make(map[types.DatasetID]*model.Dataset),
		limit:    4,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PutDataset saves a dataset and marks it current
func (m *Memory) PutDataset(ctx context.Context, ds *model.Dataset) error {
	if ds == nil {
		return goerr.New("dataset is nil")
	}
	if ds.ID == "" {
		return goerr.New("dataset ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.datasets[ds.ID]; !exists {
		m.order = append(m.order, ds.ID)
	}
	m.datasets[ds.ID] = ds
	m.current = ds.ID

	for m.limit > 0 && len(m.order) > m.limit {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.datasets, oldest)
	}

	return nil
}

// GetDataset retrieves a dataset by ID. Records are shared, not copied;
// they are immutable after load.
func (m *Memory) GetDataset(ctx context.Context, id types.DatasetID) (*model.Dataset, error) {
	if id == "" {
		return nil, goerr.New("dataset ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ds, exists := m.datasets[id]
	if !exists {
		return nil, goerr.New("dataset not found", goerr.V("id", id))
	}
	return ds, nil
}

// CurrentDataset returns the most recently stored dataset
func (m *Memory) CurrentDataset(ctx context.Context) (*model.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == "" {
		return nil, model.ErrDatasetMissing
	}
	return m.datasets[m.current], nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}
