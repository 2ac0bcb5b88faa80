package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/toplist"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ toplist.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements toplist.SnapshotService using SQLite.
// Candidates are stored as a JSON array in chart order.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

const snapshotColumns = "id, source_url, layout, candidates, content_hash, fetched_at"

// CreateSnapshot stores a new snapshot. It assigns the ID and, when unset,
// the fetch time.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *toplist.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	candidates := snapshot.Candidates
	if candidates == nil {
		candidates = []toplist.Candidate{}
	}
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to encode candidates: %w", err)
	}

	snapshot.ID = uuid.New().String()
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, source_url, layout, candidates, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.SourceURL, string(snapshot.Layout), string(data),
		snapshot.ContentHash, formatTime(snapshot.FetchedAt))

	return err
}

// FindLatestSnapshot retrieves the most recently fetched snapshot for a URL.
func (s *SnapshotService) FindLatestSnapshot(ctx context.Context, sourceURL string) (*toplist.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE source_url = ?
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT 1
	`, sourceURL)

	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, toplist.Errorf(toplist.ENOTFOUND, "no snapshot for %s", sourceURL)
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// TouchSnapshot sets the fetch time of an existing snapshot.
func (s *SnapshotService) TouchSnapshot(ctx context.Context, id string, fetchedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE snapshots SET fetched_at = ? WHERE id = ?
	`, formatTime(fetchedAt), id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return toplist.Errorf(toplist.ENOTFOUND, "snapshot %s not found", id)
	}
	return nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter toplist.SnapshotFilter) ([]*toplist.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + snapshotColumns + " FROM snapshots WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*toplist.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}

// DeleteSnapshots removes all but the newest keep snapshots for a URL.
func (s *SnapshotService) DeleteSnapshots(ctx context.Context, sourceURL string, keep int) (int, error) {
	if keep < 0 {
		return 0, toplist.Errorf(toplist.EINVALID, "keep must not be negative")
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE source_url = ?
		AND id NOT IN (
			SELECT id FROM snapshots
			WHERE source_url = ?
			ORDER BY fetched_at DESC, rowid DESC
			LIMIT ?
		)
	`, sourceURL, sourceURL, keep)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*toplist.Snapshot, error) {
	var snapshot toplist.Snapshot
	var layout, candidates, fetchedAt string

	if err := row.Scan(&snapshot.ID, &snapshot.SourceURL, &layout, &candidates,
		&snapshot.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	snapshot.Layout = toplist.Layout(layout)
	if err := json.Unmarshal([]byte(candidates), &snapshot.Candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}

	var err error
	if snapshot.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
