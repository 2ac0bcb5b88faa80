package main

import (
	"fmt"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/chart"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	cache := &chart.Cache{Loader: deps.Loader, Snapshots: deps.Snapshots}

	var snapshot *toplist.Snapshot
	err := withRefreshLock(deps.LockPath, func() (err error) {
		snapshot, err = cache.Refresh(deps.Ctx, deps.ChartURL)
		return err
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplist.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored snapshot %s: %d movies (%s)\n",
		snapshot.ID, len(snapshot.Candidates), snapshot.Layout)

	if c.Keep <= 0 {
		return nil
	}

	n, err := deps.Snapshots.DeleteSnapshots(deps.Ctx, deps.ChartURL, c.Keep)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplist.ErrorMessage(err))
		return err
	}
	if n > 0 {
		fmt.Fprintf(deps.Stdout, "Pruned %d old snapshots\n", n)
	}

	return nil
}
