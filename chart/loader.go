// Package chart loads chart pages into snapshots: fetching with rate
// limiting and retry, extraction, and snapshot caching.
package chart

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/toplist"
)

var _ toplist.ChartLoader = (*Loader)(nil)

// Loader fetches a chart page and extracts it into a snapshot.
// Loader does not persist anything; see Cache.
type Loader struct {
	Fetcher   toplist.Fetcher
	Extractor toplist.ChartExtractor

	// Limiter throttles fetches per host. Optional.
	Limiter toplist.HostLimiter

	// RetryDelays are the waits between fetch attempts. Nil disables retry.
	RetryDelays []time.Duration

	// Logf receives retry notices. Optional.
	Logf LogFunc

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// LoadChart fetches rawURL and extracts its chart.
// A fetch failure is returned unchanged and extraction does not run.
func (l *Loader) LoadChart(ctx context.Context, rawURL string) (*toplist.Snapshot, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, toplist.Errorf(toplist.EINVALID, "invalid chart URL %q", rawURL)
	}

	if l.Limiter != nil {
		if err := l.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := FetchWithRetry(ctx, rawURL, l.Fetcher.Fetch, l.Logf, l.RetryDelays)
	if err != nil {
		return nil, err
	}

	chart, err := l.Extractor.ExtractChart(html)
	if err != nil {
		return nil, err
	}

	return &toplist.Snapshot{
		SourceURL:   rawURL,
		Layout:      chart.Layout,
		Candidates:  chart.Candidates,
		ContentHash: ComputeHash(html),
		FetchedAt:   l.now().UTC(),
	}, nil
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
