package registry_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skybi/assocarray/internal/registry"
	"github.com/skybi/assocarray/internal/storage/inmem"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	driver := inmem.New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	return registry.New(driver.Snapshots(), 8)
}

func Test_Registry_Creates_Array_With_Default_Capacity_When_None_Given(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)

	arr, err := reg.Create("fruits", 0)
	require.NoError(t, err)
	assert.Equal(t, 8, arr.Capacity())

	sized, err := reg.Create("vegetables", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sized.Capacity())

	assert.Equal(t, []string{"fruits", "vegetables"}, reg.Names())
}

func Test_Registry_Rejects_Create_When_Name_Invalid_Or_Taken(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)
	_, err := reg.Create("fruits", 0)
	require.NoError(t, err)

	_, err = reg.Create("fruits", 0)
	require.ErrorIs(t, err, registry.ErrArrayExists)

	_, err = reg.Create("  ", 0)
	require.ErrorIs(t, err, registry.ErrInvalidName)

	_, err = reg.Create("a/b", 0)
	require.ErrorIs(t, err, registry.ErrInvalidName)
}

func Test_Registry_Reports_Not_Found_When_Array_Dropped(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)
	_, err := reg.Create("fruits", 0)
	require.NoError(t, err)

	require.NoError(t, reg.Drop("fruits"))

	_, err = reg.Array("fruits")
	require.ErrorIs(t, err, registry.ErrArrayNotFound)
	require.ErrorIs(t, reg.Drop("fruits"), registry.ErrArrayNotFound)
	assert.Empty(t, reg.Names())
}

func Test_Registry_Clone_Is_Independent_When_Source_Mutated(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)
	arr, err := reg.Create("fruits", 0)
	require.NoError(t, err)
	arr.Set("A", "Apple")

	name, err := reg.Clone("fruits", "copy")
	require.NoError(t, err)
	assert.Equal(t, "copy", name)
	arr.Set("A", "aardvark")

	clone, err := reg.Array("copy")
	require.NoError(t, err)
	value, err := clone.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "Apple", value)

	_, err = reg.Clone("fruits", "copy")
	require.ErrorIs(t, err, registry.ErrArrayExists)

	_, err = reg.Clone("missing", "other")
	require.ErrorIs(t, err, registry.ErrArrayNotFound)
}

func Test_Registry_Clone_Generates_Name_When_Target_Empty(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)
	_, err := reg.Create("fruits", 0)
	require.NoError(t, err)

	name, err := reg.Clone("fruits", "")
	require.NoError(t, err)

	_, err = uuid.Parse(name)
	require.NoError(t, err, "generated clone names are UUIDs")
	_, err = reg.Array(name)
	require.NoError(t, err)
}

func Test_Registry_Restores_Snapshot_When_Array_Changed_Afterwards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	arr, err := reg.Create("fruits", 0)
	require.NoError(t, err)
	arr.Set("A", "Apple")
	arr.Set("B", "Banana")

	snap, err := reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)
	assert.Len(t, snap.Entries, 2)

	arr.Set("A", "aardvark")
	require.NoError(t, arr.Remove("B"))

	restored, err := reg.Restore(ctx, "fruits", snap.ID)
	require.NoError(t, err)

	current, err := reg.Array("fruits")
	require.NoError(t, err)
	assert.Same(t, restored, current)
	value, err := current.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "Apple", value)
	assert.True(t, current.Has("B"))
}

func Test_Registry_Rejects_Restore_When_Snapshot_Belongs_To_Other_Array(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	_, err := reg.Create("fruits", 0)
	require.NoError(t, err)
	_, err = reg.Create("vegetables", 0)
	require.NoError(t, err)
	snap, err := reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)

	_, err = reg.Restore(ctx, "vegetables", snap.ID)
	require.ErrorIs(t, err, registry.ErrSnapshotNotFound)

	_, err = reg.Restore(ctx, "fruits", uuid.New())
	require.ErrorIs(t, err, registry.ErrSnapshotNotFound)
}

func Test_Registry_SnapshotAll_Persists_Every_Array(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := reg.Create(name, 0)
		require.NoError(t, err)
	}

	n, err := reg.SnapshotAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = reg.Snapshot(ctx, "missing")
	require.ErrorIs(t, err, registry.ErrArrayNotFound)
}

func Test_Registry_Restores_In_Place_When_Array_Is_Held(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	held, err := reg.Create("fruits", 0)
	require.NoError(t, err)
	held.Set("A", "Apple")
	snap, err := reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)
	held.Set("C", "Cherry")

	_, err = reg.Restore(ctx, "fruits", snap.ID)
	require.NoError(t, err)
	assert.False(t, held.Has("C"))

	held.Set("B", "Banana")

	current, err := reg.Array("fruits")
	require.NoError(t, err)
	assert.Same(t, held, current)
	assert.True(t, current.Has("B"), "writes through a held array must survive a restore")
	assert.Equal(t, 2, current.Size())
}

func Test_Registry_Recreates_Array_When_Restored_After_Drop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	arr, err := reg.Create("fruits", 2)
	require.NoError(t, err)
	arr.Set("A", "Apple")
	snap, err := reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)
	require.NoError(t, reg.Drop("fruits"))

	restored, err := reg.Restore(ctx, "fruits", snap.ID)
	require.NoError(t, err)

	current, err := reg.Array("fruits")
	require.NoError(t, err)
	assert.Same(t, restored, current)
	assert.Equal(t, 2, current.Capacity())
	value, err := current.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "Apple", value)
}

func Test_Registry_Lists_Newest_Snapshot_First_When_Taken_Back_To_Back(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	_, err := reg.Create("fruits", 0)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		_, err := reg.Snapshot(ctx, "fruits")
		require.NoError(t, err)
		second, err := reg.Snapshot(ctx, "fruits")
		require.NoError(t, err)

		newest, err := reg.Snapshots(ctx, "fruits", 1)
		require.NoError(t, err)
		require.Len(t, newest, 1)
		require.Equal(t, second.ID, newest[0].ID, "trial %d", i)
	}
}

func Test_Registry_Restores_Latest_Snapshot_When_No_ID_Given(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	arr, err := reg.Create("fruits", 0)
	require.NoError(t, err)

	_, err = reg.Restore(ctx, "fruits", uuid.Nil)
	require.ErrorIs(t, err, registry.ErrSnapshotNotFound)

	arr.Set("A", "Apple")
	_, err = reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)
	arr.Set("A", "Avocado")
	_, err = reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)
	arr.Set("A", "aardvark")

	_, err = reg.Restore(ctx, "fruits", uuid.Nil)
	require.NoError(t, err)
	value, err := arr.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "Avocado", value)
}

func Test_Registry_Deletes_Snapshot_Only_When_It_Belongs_To_Array(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := newRegistry(t)
	_, err := reg.Create("fruits", 0)
	require.NoError(t, err)
	snap, err := reg.Snapshot(ctx, "fruits")
	require.NoError(t, err)

	require.ErrorIs(t, reg.DeleteSnapshot(ctx, "vegetables", snap.ID), registry.ErrSnapshotNotFound)
	require.NoError(t, reg.DeleteSnapshot(ctx, "fruits", snap.ID))
	require.ErrorIs(t, reg.DeleteSnapshot(ctx, "fruits", snap.ID), registry.ErrSnapshotNotFound)

	snapshots, err := reg.Snapshots(ctx, "fruits", 10)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
