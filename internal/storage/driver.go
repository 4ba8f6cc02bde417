package storage

import (
	"context"

	"github.com/skybi/assocarray/internal/snapshot"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Snapshots provides a snapshot repository implementation
	Snapshots() snapshot.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
