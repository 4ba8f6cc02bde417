package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/assocarray/internal/snapshot"
)

// record is the row stored in go-memdb.
// go-memdb has no indexer for fixed-size byte arrays, so the ID is kept in its string form.
type record struct {
	ID       string
	Array    string
	Snapshot *snapshot.Snapshot
}

// SnapshotRepository implements the snapshot.Repository interface using hashicorp/go-memdb
type SnapshotRepository struct {
	db *memdb.MemDB
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)

// GetByID retrieves a snapshot by its ID
func (repo *SnapshotRepository) GetByID(_ context.Context, id uuid.UUID) (*snapshot.Snapshot, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First(tableSnapshots, "id", id.String())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*record).Snapshot.Copy(), nil
}

// GetLatest retrieves the most recent snapshot of a specific array
func (repo *SnapshotRepository) GetLatest(ctx context.Context, array string) (*snapshot.Snapshot, error) {
	snapshots, err := repo.GetByArray(ctx, array, 1)
	if err != nil || len(snapshots) == 0 {
		return nil, err
	}
	return snapshots[0], nil
}

// GetByArray retrieves the snapshots of a specific array, ordered by the time they were taken (descending).
// If limit <= 0, a default limit value of 10 is used.
func (repo *SnapshotRepository) GetByArray(_ context.Context, array string, limit uint64) ([]*snapshot.Snapshot, error) {
	if limit == 0 {
		limit = 10
	}

	txn := repo.db.Txn(false)
	it, err := txn.Get(tableSnapshots, "array", array)
	if err != nil {
		return nil, err
	}

	snapshots := []*snapshot.Snapshot{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		snapshots = append(snapshots, obj.(*record).Snapshot)
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].TakenAt > snapshots[j].TakenAt
	})
	if uint64(len(snapshots)) > limit {
		snapshots = snapshots[:limit]
	}
	for i, obj := range snapshots {
		snapshots[i] = obj.Copy()
	}
	return snapshots, nil
}

// Create persists a new snapshot
func (repo *SnapshotRepository) Create(_ context.Context, obj *snapshot.Snapshot) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableSnapshots, &record{
		ID:       obj.ID.String(),
		Array:    obj.Array,
		Snapshot: obj.Copy(),
	}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Delete deletes a snapshot by its ID
func (repo *SnapshotRepository) Delete(_ context.Context, id uuid.UUID) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableSnapshots, "id", id.String()); err != nil {
		return err
	}
	txn.Commit()
	return nil
}
