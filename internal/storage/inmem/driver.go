package inmem

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/skybi/assocarray/internal/snapshot"
	"github.com/skybi/assocarray/internal/storage"
)

const tableSnapshots = "snapshots"

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableSnapshots: {
			Name: tableSnapshots,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "ID"},
				},
				"array": {
					Name:         "array",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Array"},
				},
			},
		},
	},
}

// Driver represents the in-memory storage driver built using hashicorp/go-memdb
type Driver struct {
	db        *memdb.MemDB
	snapshots *SnapshotRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver.
// Use Initialize to create the underlying database.
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and initializes the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.snapshots = &SnapshotRepository{db: db}
	return nil
}

// Snapshots provides the in-memory snapshot repository implementation
func (driver *Driver) Snapshots() snapshot.Repository {
	return driver.snapshots
}

// Close discards the in-memory database
func (driver *Driver) Close() {
	driver.snapshots = nil
	driver.db = nil
}
