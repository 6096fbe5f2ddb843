package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skill-gap/internal/dataset"

	"github.com/google/uuid"
)

// MemoryDatasetRepository keeps datasets in process when no database is configured.
type MemoryDatasetRepository struct {
	mu    sync.RWMutex
	metas map[uuid.UUID]DatasetMeta
	data  map[uuid.UUID]*dataset.Dataset
}

func NewMemoryDatasetRepository() *MemoryDatasetRepository {
	return &MemoryDatasetRepository{
		metas: map[uuid.UUID]DatasetMeta{},
		data:  map[uuid.UUID]*dataset.Dataset{},
	}
}

func (r *MemoryDatasetRepository) Save(_ context.Context, seed int64, label string, ds *dataset.Dataset) (DatasetMeta, error) {
	if ds == nil || ds.Len() == 0 {
		return DatasetMeta{}, fmt.Errorf("save dataset: empty dataset")
	}
	meta := DatasetMeta{
		ID:        uuid.New(),
		Seed:      seed,
		Label:     label,
		JobCount:  len(ds.Jobs()),
		RowCount:  ds.Len(),
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.metas[meta.ID] = meta
	r.data[meta.ID] = ds
	return meta, nil
}

func (r *MemoryDatasetRepository) List(_ context.Context, limit int) ([]DatasetMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	out := make([]DatasetMeta, 0, len(r.metas))
	for _, m := range r.metas {
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryDatasetRepository) Load(_ context.Context, id uuid.UUID) (*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.data[id]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

func (r *MemoryDatasetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrDatasetNotFound
	}
	delete(r.data, id)
	delete(r.metas, id)
	return nil
}
