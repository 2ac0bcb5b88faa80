package chart

import (
	"context"
	"time"

	"github.com/fwojciec/toplist"
	"golang.org/x/sync/singleflight"
)

var _ toplist.ChartLoader = (*Cache)(nil)

// DefaultMaxAge is how long a stored snapshot is served before the chart is
// loaded again.
const DefaultMaxAge = 6 * time.Hour

// Cache serves the latest stored snapshot while it is younger than MaxAge
// and otherwise loads and stores a fresh one. Concurrent loads of the same
// chart share a single fetch; reads of a fresh snapshot never wait on it.
//
// A load whose content hash matches the latest stored snapshot does not
// store a duplicate; the stored snapshot's fetch time is moved forward
// instead.
type Cache struct {
	group singleflight.Group

	Loader    toplist.ChartLoader
	Snapshots toplist.SnapshotService

	// MaxAge defaults to DefaultMaxAge when zero.
	MaxAge time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// LoadChart returns a fresh-enough snapshot for url.
// Load failures are returned as-is; a stale snapshot is never served in
// their place.
func (c *Cache) LoadChart(ctx context.Context, url string) (*toplist.Snapshot, error) {
	snapshot, err := c.fresh(ctx, url)
	if err != nil || snapshot != nil {
		return snapshot, err
	}

	return c.do(ctx, "load:"+url, func(ctx context.Context) (*toplist.Snapshot, error) {
		// Another flight may have stored a snapshot since the check above.
		snapshot, err := c.fresh(ctx, url)
		if err != nil || snapshot != nil {
			return snapshot, err
		}
		return c.refresh(ctx, url)
	})
}

// Refresh loads and stores a new snapshot regardless of the stored one's age.
func (c *Cache) Refresh(ctx context.Context, url string) (*toplist.Snapshot, error) {
	return c.do(ctx, "refresh:"+url, func(ctx context.Context) (*toplist.Snapshot, error) {
		return c.refresh(ctx, url)
	})
}

// do runs fn once per key among concurrent callers. The shared call is
// detached from the first caller's cancellation so that one caller giving
// up does not fail the others; each caller still returns as soon as its own
// ctx is done.
func (c *Cache) do(ctx context.Context, key string, fn func(context.Context) (*toplist.Snapshot, error)) (*toplist.Snapshot, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fn(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*toplist.Snapshot), nil
	}
}

// fresh returns the latest stored snapshot if it is younger than MaxAge, or
// nil if it is stale or missing.
func (c *Cache) fresh(ctx context.Context, url string) (*toplist.Snapshot, error) {
	latest, err := c.Snapshots.FindLatestSnapshot(ctx, url)
	switch {
	case err == nil:
		if c.now().Sub(latest.FetchedAt) < c.maxAge() {
			return latest, nil
		}
		return nil, nil
	case toplist.ErrorCode(err) == toplist.ENOTFOUND:
		return nil, nil
	default:
		return nil, err
	}
}

func (c *Cache) refresh(ctx context.Context, url string) (*toplist.Snapshot, error) {
	snapshot, err := c.Loader.LoadChart(ctx, url)
	if err != nil {
		return nil, err
	}

	latest, err := c.Snapshots.FindLatestSnapshot(ctx, url)
	if err != nil && toplist.ErrorCode(err) != toplist.ENOTFOUND {
		return nil, err
	}
	if unchanged(latest, snapshot) {
		fetchedAt := snapshot.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = c.now().UTC()
		}
		if err := c.Snapshots.TouchSnapshot(ctx, latest.ID, fetchedAt); err != nil {
			return nil, err
		}
		touched := *latest
		touched.FetchedAt = fetchedAt
		return &touched, nil
	}

	if err := c.Snapshots.CreateSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// unchanged reports whether loaded has the same content as the stored
// snapshot. Snapshots without a hash never match.
func unchanged(stored, loaded *toplist.Snapshot) bool {
	return stored != nil &&
		stored.ContentHash != "" &&
		stored.ContentHash == loaded.ContentHash
}

func (c *Cache) maxAge() time.Duration {
	if c.MaxAge > 0 {
		return c.MaxAge
	}
	return DefaultMaxAge
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
