package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/skybi/assocarray/internal/assocarray"
	"github.com/skybi/assocarray/internal/snapshot"
)

// SnapshotRepository implements the snapshot.Repository interface in order to implement caching.
// Snapshots are immutable once created, so only lookups by ID are served from the cache.
// The cache only ever holds its own copies and hands out copies of them.
type SnapshotRepository struct {
	repo  snapshot.Repository
	cache *assocarray.ExpiringMap[uuid.UUID, *snapshot.Snapshot]
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)

// GetByID retrieves a snapshot by its ID
func (repo *SnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (*snapshot.Snapshot, error) {
	cached, ok := repo.cache.Lookup(id)
	if ok {
		return cached.Copy(), nil
	}
	obj, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj.Copy())
	}
	return obj, nil
}

// GetLatest retrieves the most recent snapshot of a specific array
func (repo *SnapshotRepository) GetLatest(ctx context.Context, array string) (*snapshot.Snapshot, error) {
	obj, err := repo.repo.GetLatest(ctx, array)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj.Copy())
	}
	return obj, nil
}

// GetByArray retrieves the snapshots of a specific array, ordered by the time they were taken (descending)
func (repo *SnapshotRepository) GetByArray(ctx context.Context, array string, limit uint64) ([]*snapshot.Snapshot, error) {
	snapshots, err := repo.repo.GetByArray(ctx, array, limit)
	if err != nil {
		return nil, err
	}
	for _, obj := range snapshots {
		repo.cache.Set(obj.ID, obj.Copy())
	}
	return snapshots, nil
}

// Create persists a new snapshot
func (repo *SnapshotRepository) Create(ctx context.Context, obj *snapshot.Snapshot) error {
	if err := repo.repo.Create(ctx, obj); err != nil {
		return err
	}
	repo.cache.Set(obj.ID, obj.Copy())
	return nil
}

// Delete deletes a snapshot by its ID
func (repo *SnapshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = repo.cache.Remove(id)
	return nil
}
