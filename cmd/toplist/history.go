package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/toplist"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	url := deps.ChartURL
	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, toplist.SnapshotFilter{
		SourceURL: &url,
		Limit:     c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", toplist.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots stored. Use 'toplist refresh' to fetch one.")
		return nil
	}

	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			s.ID,
			s.FetchedAt.Format(time.RFC3339),
			string(s.Layout),
			strconv.Itoa(len(s.Candidates)),
			shortHash(s.ContentHash),
		})
	}
	fmt.Fprintln(deps.Stdout, renderTable(
		[]string{"ID", "Fetched", "Layout", "Movies", "Hash"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))

	return nil
}

// shortHash abbreviates a content hash for display.
func shortHash(hash string) string {
	const n = 8
	switch {
	case hash == "":
		return "-"
	case len(hash) > n:
		return hash[:n]
	default:
		return hash
	}
}
