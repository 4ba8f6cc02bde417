package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skybi/assocarray/internal/assocarray"
	"github.com/skybi/assocarray/internal/snapshot"
)

var (
	ErrInvalidName      = errors.New("array names must not be empty or contain '/'")
	ErrArrayExists      = errors.New("an array with this name already exists")
	ErrArrayNotFound    = errors.New("array not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Array is a named, thread safe string array hosted by a Registry
type Array = assocarray.Locked[string, string]

// Registry keeps track of named arrays.
// The arrays themselves are stored in a SlotArray keyed by their name.
type Registry struct {
	arrays          *assocarray.Locked[string, *Array]
	snapshots       snapshot.Repository
	defaultCapacity int
}

// New creates a new empty registry.
// Arrays created without an explicit capacity start out with defaultCapacity slots.
func New(snapshots snapshot.Repository, defaultCapacity int) *Registry {
	return &Registry{
		arrays:          assocarray.NewLocked[string, *Array](0),
		snapshots:       snapshots,
		defaultCapacity: defaultCapacity,
	}
}

// Create creates a new empty array.
// A non-positive capacity falls back to the registry's default capacity.
func (registry *Registry) Create(name string, capacity int) (*Array, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		capacity = registry.defaultCapacity
	}
	return registry.insert(name, assocarray.NewLocked[string, string](capacity))
}

// Array retrieves an array by its name
func (registry *Registry) Array(name string) (*Array, error) {
	arr, ok := registry.arrays.Lookup(name)
	if !ok {
		return nil, ErrArrayNotFound
	}
	return arr, nil
}

// Drop removes an array
func (registry *Registry) Drop(name string) error {
	if err := registry.arrays.Remove(name); err != nil {
		if errors.Is(err, assocarray.ErrKeyNotFound) {
			return ErrArrayNotFound
		}
		return err
	}
	return nil
}

// Names returns the names of all arrays in the order of their slots
func (registry *Registry) Names() []string {
	names := make([]string, 0, registry.arrays.Size())
	registry.arrays.Range(func(name string, _ *Array) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Clone duplicates an array.
// If target is empty, a random name is generated. The name of the clone is returned.
func (registry *Registry) Clone(source, target string) (string, error) {
	arr, err := registry.Array(source)
	if err != nil {
		return "", err
	}
	if target == "" {
		target = uuid.NewString()
	}
	if err := validateName(target); err != nil {
		return "", err
	}
	if _, err := registry.insert(target, arr.Clone()); err != nil {
		return "", err
	}
	return target, nil
}

// Snapshot persists the current contents of an array
func (registry *Registry) Snapshot(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	arr, err := registry.Array(name)
	if err != nil {
		return nil, err
	}
	var snap *snapshot.Snapshot
	arr.BootstrappedManipulation(func(underlying *assocarray.SlotArray[string, string]) {
		snap = snapshot.Of(name, underlying)
	})
	if err := registry.snapshots.Create(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SnapshotAll persists the current contents of all arrays and returns how many were persisted.
// It stops at the first error.
func (registry *Registry) SnapshotAll(ctx context.Context) (int, error) {
	n := 0
	for _, name := range registry.Names() {
		if _, err := registry.Snapshot(ctx, name); err != nil {
			if errors.Is(err, ErrArrayNotFound) {
				// dropped concurrently
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}

// Snapshots lists the most recent snapshots of an array, newest first.
// Snapshots are kept even after their array has been dropped, so the array does not have to exist.
func (registry *Registry) Snapshots(ctx context.Context, name string, limit uint64) ([]*snapshot.Snapshot, error) {
	return registry.snapshots.GetByArray(ctx, name, limit)
}

// Restore replaces the contents of an array with the ones of a snapshot.
// The snapshot has to belong to the array; uuid.Nil selects the most recent one.
// An existing array is overwritten in place so holders of it keep working on the restored contents. If the array
// does not exist anymore, it is re-created.
func (registry *Registry) Restore(ctx context.Context, name string, id uuid.UUID) (*Array, error) {
	var snap *snapshot.Snapshot
	var err error
	if id == uuid.Nil {
		snap, err = registry.snapshots.GetLatest(ctx, name)
	} else {
		snap, err = registry.snapshots.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if snap == nil || snap.Array != name {
		return nil, ErrSnapshotNotFound
	}

	var arr *Array
	created := false
	registry.arrays.BootstrappedManipulation(func(underlying *assocarray.SlotArray[string, *Array]) {
		existing, ok := underlying.Lookup(name)
		if ok {
			arr = existing
			return
		}
		arr = assocarray.Guard(snap.Restore())
		underlying.Set(name, arr)
		created = true
	})
	if !created {
		arr.BootstrappedManipulation(func(underlying *assocarray.SlotArray[string, string]) {
			underlying.Clear()
			for _, entry := range snap.Entries {
				underlying.Set(entry.Key, entry.Value)
			}
		})
	}

	log.Debug().Str("array", name).Str("snapshot", snap.ID.String()).Bool("recreated", created).Int("entries", len(snap.Entries)).Msg("restored array")
	return arr, nil
}

// DeleteSnapshot deletes a snapshot of an array
func (registry *Registry) DeleteSnapshot(ctx context.Context, name string, id uuid.UUID) error {
	snap, err := registry.snapshots.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if snap == nil || snap.Array != name {
		return ErrSnapshotNotFound
	}
	return registry.snapshots.Delete(ctx, id)
}

func (registry *Registry) insert(name string, arr *Array) (*Array, error) {
	var err error
	registry.arrays.BootstrappedManipulation(func(underlying *assocarray.SlotArray[string, *Array]) {
		if underlying.Has(name) {
			err = ErrArrayExists
			return
		}
		underlying.Set(name, arr)
	})
	if err != nil {
		return nil, err
	}
	return arr, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		return ErrInvalidName
	}
	return nil
}
