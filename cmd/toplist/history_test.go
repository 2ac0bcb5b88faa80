package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/toplist"
	main "github.com/fwojciec/toplist/cmd/toplist"
	"github.com/fwojciec/toplist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists snapshots for the chart URL", func(t *testing.T) {
		t.Parallel()

		var filter toplist.SnapshotFilter
		snapshots := &mock.SnapshotService{
			FindSnapshotsFn: func(_ context.Context, f toplist.SnapshotFilter) ([]*toplist.Snapshot, error) {
				filter = f
				return []*toplist.Snapshot{{
					ID:          "snap-2",
					SourceURL:   toplist.DefaultChartURL,
					Layout:      toplist.LayoutOld,
					Candidates:  []toplist.Candidate{{Name: "The Godfather", ID: "tt0068646"}},
					ContentHash: "0123456789abcdef",
					FetchedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
				}}, nil
			},
		}
		deps, stdout, _ := testDeps(nil, snapshots)

		err := (&main.HistoryCmd{Limit: 3}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, filter.SourceURL)
		assert.Equal(t, toplist.DefaultChartURL, *filter.SourceURL)
		assert.Equal(t, 3, filter.Limit)
		output := stdout.String()
		assert.Contains(t, output, "snap-2")
		assert.Contains(t, output, "2024-03-01T12:00:00Z")
		assert.Contains(t, output, "old_layout")
		assert.Contains(t, output, "01234567")
		assert.NotContains(t, output, "0123456789abcdef")
	})

	t.Run("returns lookup error", func(t *testing.T) {
		t.Parallel()

		snapshots := &mock.SnapshotService{
			FindSnapshotsFn: func(context.Context, toplist.SnapshotFilter) ([]*toplist.Snapshot, error) {
				return nil, toplist.Errorf(toplist.EINTERNAL, "db closed")
			},
		}
		deps, _, stderr := testDeps(nil, snapshots)

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: db closed")
	})
}
