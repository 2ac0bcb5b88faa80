package main

import (
	"fmt"

	"github.com/fwojciec/toplist"
	"github.com/gofrs/flock"
)

// withRefreshLock runs fn while holding the refresh lock file so that a
// scheduled refresh and a serve process do not fetch the chart at the same
// time. An empty path runs fn without locking.
func withRefreshLock(path string, fn func() error) error {
	if path == "" {
		return fn()
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire refresh lock: %w", err)
	}
	if !ok {
		return toplist.Errorf(toplist.ECONFLICT, "another refresh is running (lock %s)", path)
	}
	defer lock.Unlock()

	return fn()
}
