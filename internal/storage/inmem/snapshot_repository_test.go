package inmem_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybi/assocarray/internal/snapshot"
	"github.com/skybi/assocarray/internal/storage/inmem"
)

func newDriver(t *testing.T) *inmem.Driver {
	t.Helper()

	driver := inmem.New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	return driver
}

func newSnapshot(array string, takenAt int64, entries ...snapshot.Entry) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:       uuid.New(),
		Array:    array,
		TakenAt:  takenAt,
		Capacity: 16,
		Entries:  entries,
	}
}

func Test_SnapshotRepository_Returns_Snapshot_When_Created(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newDriver(t).Snapshots()
	snap := newSnapshot("fruits", 100, snapshot.Entry{Key: "A", Value: "Apple"})

	require.NoError(t, repo.Create(ctx, snap))

	found, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(snap, found))
}

func Test_SnapshotRepository_Returns_Nil_When_Snapshot_Missing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newDriver(t).Snapshots()

	found, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)

	latest, err := repo.GetLatest(ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func Test_SnapshotRepository_Orders_By_Time_When_Listing_Array(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newDriver(t).Snapshots()
	old := newSnapshot("fruits", 100)
	newest := newSnapshot("fruits", 300)
	middle := newSnapshot("fruits", 200)
	other := newSnapshot("vegetables", 400)
	for _, snap := range []*snapshot.Snapshot{old, newest, middle, other} {
		require.NoError(t, repo.Create(ctx, snap))
	}

	listed, err := repo.GetByArray(ctx, "fruits", 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, old.ID}, []uuid.UUID{listed[0].ID, listed[1].ID, listed[2].ID})

	limited, err := repo.GetByArray(ctx, "fruits", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	latest, err := repo.GetLatest(ctx, "fruits")
	require.NoError(t, err)
	assert.Equal(t, newest.ID, latest.ID)
}

func Test_SnapshotRepository_Hides_Snapshot_When_Deleted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newDriver(t).Snapshots()
	snap := newSnapshot("fruits", 100)
	require.NoError(t, repo.Create(ctx, snap))

	require.NoError(t, repo.Delete(ctx, snap.ID))

	found, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func Test_SnapshotRepository_Detaches_Stored_Entries_From_Callers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newDriver(t).Snapshots()
	snap := newSnapshot("fruits", 100, snapshot.Entry{Key: "A", Value: "Apple"})
	require.NoError(t, repo.Create(ctx, snap))

	snap.Entries[0].Value = "mutated"
	found, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	found.Entries[0].Value = "mutated again"

	again, err := repo.GetByID(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", again.Entries[0].Value)
}
