package main

import (
	"fmt"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/chart"
	"github.com/fwojciec/toplist/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
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

	manifest := toplist.NewManifest(c.AddonID, version)
	metas := toplist.MetaBuilder{OMDbAPIKey: c.OMDbAPIKey}.Build(snapshot.Candidates)

	if err := fs.NewWriter(c.Dir).WriteAddon(deps.Ctx, manifest, metas); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d movies to %s\n", len(metas), c.Dir)
	return nil
}
