package toplist

import (
	"context"
	"time"
)

// DefaultChartURL is the IMDb Top Rated Movies chart.
const DefaultChartURL = "https://www.imdb.com/chart/top/"

// Snapshot is the result of loading a chart page at a point in time.
type Snapshot struct {
	ID          string      `json:"id"`
	SourceURL   string      `json:"sourceUrl"`
	Layout      Layout      `json:"layout"`
	Candidates  []Candidate `json:"candidates"`
	ContentHash string      `json:"contentHash"` // xxhash of the fetched markup
	FetchedAt   time.Time   `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	if !s.Layout.Valid() {
		return Errorf(EINVALID, "snapshot layout %q is not a known layout", s.Layout)
	}
	return nil
}

// ChartLoader loads a chart page into a snapshot.
type ChartLoader interface {
	// LoadChart fetches and extracts the chart at url.
	// Fetch failures are returned as-is; an unrecognizable page is not an
	// error and yields a snapshot with no candidates.
	LoadChart(ctx context.Context, url string) (*Snapshot, error)
}

// SnapshotService represents a service for managing chart snapshots.
type SnapshotService interface {
	// CreateSnapshot stores a new snapshot and assigns its ID.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindLatestSnapshot retrieves the most recently fetched snapshot for a URL.
	// Returns ENOTFOUND if no snapshot exists.
	FindLatestSnapshot(ctx context.Context, sourceURL string) (*Snapshot, error)

	// TouchSnapshot sets the fetch time of an existing snapshot, recording
	// that the chart was fetched again with identical content.
	// Returns ENOTFOUND if the snapshot does not exist.
	TouchSnapshot(ctx context.Context, id string, fetchedAt time.Time) error

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshots removes all but the newest keep snapshots for a URL
	// and returns the number removed.
	DeleteSnapshots(ctx context.Context, sourceURL string, keep int) (int, error)
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
