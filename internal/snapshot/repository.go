package snapshot

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the snapshot repository API.
// Lookups of non-existing snapshots return nil without an error.
type Repository interface {
	// GetByID retrieves a snapshot by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// GetLatest retrieves the most recent snapshot of a specific array
	GetLatest(ctx context.Context, array string) (*Snapshot, error)

	// GetByArray retrieves the snapshots of a specific array, ordered by the time they were taken (descending).
	// If limit <= 0, a default limit value of 10 is used.
	GetByArray(ctx context.Context, array string, limit uint64) ([]*Snapshot, error)

	// Create persists a new snapshot
	Create(ctx context.Context, snapshot *Snapshot) error

	// Delete deletes a snapshot by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}
