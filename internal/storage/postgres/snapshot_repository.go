package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/assocarray/internal/snapshot"
)

// SnapshotRepository implements the snapshot.Repository interface using PostgreSQL
type SnapshotRepository struct {
	db *pgxpool.Pool
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)

// GetByID retrieves a snapshot by its ID
func (repo *SnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (*snapshot.Snapshot, error) {
	row := repo.db.QueryRow(ctx, "SELECT snapshot_id, array_name, taken_at, capacity FROM snapshots WHERE snapshot_id = $1", id)
	obj, err := repo.rowToSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := repo.fetchEntries(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
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
func (repo *SnapshotRepository) GetByArray(ctx context.Context, array string, limit uint64) ([]*snapshot.Snapshot, error) {
	query := squirrel.Select("snapshot_id", "array_name", "taken_at", "capacity").
		From("snapshots").
		Where(squirrel.Eq{"array_name": array}).
		OrderBy("taken_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	} else {
		query = query.Limit(10)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*snapshot.Snapshot{}, nil
		}
		return nil, err
	}
	snapshots := []*snapshot.Snapshot{}
	for rows.Next() {
		obj, err := repo.rowToSnapshot(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		snapshots = append(snapshots, obj)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, obj := range snapshots {
		if err := repo.fetchEntries(ctx, obj); err != nil {
			return nil, err
		}
	}
	return snapshots, nil
}

// Create persists a new snapshot
func (repo *SnapshotRepository) Create(ctx context.Context, obj *snapshot.Snapshot) error {
	// Begin a new transaction
	tx, err := repo.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Create the snapshot row itself
	_, err = tx.Exec(ctx, "INSERT INTO snapshots VALUES ($1, $2, $3, $4)", obj.ID, obj.Array, obj.TakenAt, obj.Capacity)
	if err != nil {
		return err
	}

	// Create the entry rows in a single statement
	if len(obj.Entries) > 0 {
		query := squirrel.Insert("snapshot_entries").Columns("snapshot_id", "position", "entry_key", "entry_value")
		for i, entry := range obj.Entries {
			query = query.Values(obj.ID, i, entry.Key, entry.Value)
		}
		sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, vals...); err != nil {
			return err
		}
	}

	// Commit the changes
	return tx.Commit(ctx)
}

// Delete deletes a snapshot by its ID.
// Its entries are removed by the foreign key cascade.
func (repo *SnapshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM snapshots WHERE snapshot_id = $1", id)
	return err
}

func (repo *SnapshotRepository) fetchEntries(ctx context.Context, obj *snapshot.Snapshot) error {
	rows, err := repo.db.Query(ctx, "SELECT entry_key, entry_value FROM snapshot_entries WHERE snapshot_id = $1 ORDER BY position", obj.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	obj.Entries = []snapshot.Entry{}
	for rows.Next() {
		var entry snapshot.Entry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return err
		}
		obj.Entries = append(obj.Entries, entry)
	}
	return rows.Err()
}

func (repo *SnapshotRepository) rowToSnapshot(row pgx.Row) (*snapshot.Snapshot, error) {
	obj := new(snapshot.Snapshot)
	if err := row.Scan(&obj.ID, &obj.Array, &obj.TakenAt, &obj.Capacity); err != nil {
		return nil, err
	}
	return obj, nil
}
