package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skybi/assocarray/internal/assocarray"
	"github.com/skybi/assocarray/internal/snapshot"
	"github.com/skybi/assocarray/internal/storage"
)

// Driver represents a storage driver implementation that wraps another one in order to implement in-memory caching
type Driver struct {
	underlying      storage.Driver
	lifetime        time.Duration
	cleanupInterval time.Duration
	snapshots       *SnapshotRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver.
// Cached values live for the given lifetime and are cleaned up in the given interval.
func New(underlying storage.Driver, lifetime, cleanupInterval time.Duration) *Driver {
	return &Driver{
		underlying:      underlying,
		lifetime:        lifetime,
		cleanupInterval: cleanupInterval,
	}
}

// Initialize initializes the underlying driver and the caching repositories
func (driver *Driver) Initialize(ctx context.Context) error {
	if err := driver.underlying.Initialize(ctx); err != nil {
		return err
	}

	snapshotCache := assocarray.NewExpiring[uuid.UUID, *snapshot.Snapshot](driver.lifetime)
	snapshotCache.ScheduleCleanupTask(driver.cleanupInterval)
	driver.snapshots = &SnapshotRepository{
		repo:  driver.underlying.Snapshots(),
		cache: snapshotCache,
	}
	return nil
}

// Snapshots provides the caching snapshot repository implementation
func (driver *Driver) Snapshots() snapshot.Repository {
	return driver.snapshots
}

// Close closes the caching repositories and the underlying driver
func (driver *Driver) Close() {
	if driver.snapshots != nil {
		driver.snapshots.cache.StopCleanupTask()
		driver.snapshots = nil
	}
	driver.underlying.Close()
}
