package main

import (
	"fmt"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/chart"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	cache := &chart.Cache{
		Loader:    deps.Loader,
		Snapshots: deps.Snapshots,
		MaxAge:    c.MaxAge,
	}

	snapshot, err := cache.LoadChart(deps.Ctx, deps.ChartURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplist.ErrorMessage(err))
		return err
	}

	metas := toplist.MetaBuilder{OMDbAPIKey: c.OMDbAPIKey}.Build(snapshot.Candidates)
	if len(metas) == 0 {
		fmt.Fprintf(deps.Stdout, "No movies found on %s.\n", deps.ChartURL)
		return nil
	}

	for _, m := range metas {
		fmt.Fprintf(deps.Stdout, "%s (%s) - Link: %s\n", m.Name, m.ID, m.Links[0].URL)
	}

	return nil
}
