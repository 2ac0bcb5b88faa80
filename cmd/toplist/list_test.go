package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/toplist"
	main "github.com/fwojciec/toplist/cmd/toplist"
	"github.com/fwojciec/toplist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptySnapshots is a SnapshotService with no stored snapshots that accepts writes.
func emptySnapshots() *mock.SnapshotService {
	return &mock.SnapshotService{
		FindLatestSnapshotFn: func(context.Context, string) (*toplist.Snapshot, error) {
			return nil, toplist.Errorf(toplist.ENOTFOUND, "no snapshot")
		},
		CreateSnapshotFn: func(_ context.Context, s *toplist.Snapshot) error {
			s.ID = "snap-1"
			return nil
		},
		DeleteSnapshotsFn: func(context.Context, string, int) (int, error) {
			return 0, nil
		},
	}
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints one line per movie in chart order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(staticLoader(
			toplist.Candidate{Name: "The Shawshank Redemption", ID: "tt0111161"},
			toplist.Candidate{Name: "The Godfather", ID: "tt0068646"},
		), emptySnapshots())

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"The Shawshank Redemption (tt0111161) - Link: https://www.strem.io/s/movie/the-shawshank-redemption-0111161\n"+
				"The Godfather (tt0068646) - Link: https://www.strem.io/s/movie/the-godfather-0068646\n",
			stdout.String())
	})

	t.Run("reports empty chart", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(staticLoader(), emptySnapshots())

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No movies found")
	})

	t.Run("returns transport error", func(t *testing.T) {
		t.Parallel()

		loader := &mock.ChartLoader{
			LoadChartFn: func(context.Context, string) (*toplist.Snapshot, error) {
				return nil, toplist.Errorf(toplist.ETRANSPORT, "HTTP 503 for %s", toplist.DefaultChartURL)
			},
		}
		deps, stdout, stderr := testDeps(loader, emptySnapshots())

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, toplist.ETRANSPORT, toplist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: HTTP 503")
		assert.Empty(t, stdout.String())
	})
}
