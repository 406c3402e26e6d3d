package service

import (
	"context"
	"sync"

	"homestay-backoffice/internal/dataset"
)

// DatasetLoader produces a fresh dataset snapshot from the external store.
type DatasetLoader func(ctx context.Context) (*dataset.Dataset, error)

// SnapshotCache is the single-slot dataset cache: at most one snapshot is
// live at a time, readers share it, and any write path invalidates it so the
// next read reloads. It is owned by the composition root and handed to the
// services that need it; there is no package-level state.
type SnapshotCache struct {
	mu   sync.Mutex
	snap *dataset.Dataset
	load DatasetLoader
}

func NewSnapshotCache(load DatasetLoader) *SnapshotCache {
	return &SnapshotCache{load: load}
}

// GetOrLoad returns the live snapshot, loading one if the slot is empty.
// Readers never observe a half-built snapshot: the slot is only ever swapped
// for a fully loaded dataset under the lock.
func (c *SnapshotCache) GetOrLoad(ctx context.Context) (*dataset.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil {
		return c.snap, nil
	}
	ds, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = ds
	return ds, nil
}

// Invalidate clears the slot. Called after every successful write so the
// next read reflects the store.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
