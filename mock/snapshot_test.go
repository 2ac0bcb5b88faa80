package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateSnapshotFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *toplist.Snapshot
		s := &mock.SnapshotService{
			CreateSnapshotFn: func(_ context.Context, snapshot *toplist.Snapshot) error {
				calledWith = snapshot
				return nil
			},
		}

		snapshot := &toplist.Snapshot{SourceURL: toplist.DefaultChartURL, Layout: toplist.LayoutNew}

		err := s.CreateSnapshot(context.Background(), snapshot)

		require.NoError(t, err)
		assert.Same(t, snapshot, calledWith)
	})
}

func TestChartLoader_LoadChart(t *testing.T) {
	t.Parallel()

	t.Run("delegates to LoadChartFn", func(t *testing.T) {
		t.Parallel()

		want := &toplist.Snapshot{SourceURL: "https://example.com/chart", Layout: toplist.LayoutOld}
		l := &mock.ChartLoader{
			LoadChartFn: func(_ context.Context, url string) (*toplist.Snapshot, error) {
				assert.Equal(t, "https://example.com/chart", url)
				return want, nil
			},
		}

		got, err := l.LoadChart(context.Background(), "https://example.com/chart")

		require.NoError(t, err)
		assert.Same(t, want, got)
	})
}
