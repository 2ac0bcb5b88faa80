// Package rod provides a toplist.Fetcher backed by headless Chrome, for chart
// pages that only render their list after JavaScript runs.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/toplist"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements toplist.Fetcher at compile time.
var _ toplist.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.launcher = l
	f.browser = browser
	return f, nil
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Fetch navigates to the URL and returns the rendered HTML.
// Cancellation of ctx is returned unwrapped; any other failure, including
// the per-page timeout, is reported as toplist.ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return "", toplist.Errorf(toplist.EINVALID, "fetcher is closed")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	pageCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	html, err := f.render(pageCtx, url)
	if err != nil {
		return "", fetchError(ctx, pageCtx, url, err)
	}
	return html, nil
}

// fetchError maps a render failure to the error returned by Fetch. parent is
// the caller's context and page the one bounded by the fetch timeout.
func fetchError(parent, page context.Context, url string, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	if page.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return toplist.Errorf(toplist.ETRANSPORT, "timeout rendering %s", url)
	}
	return toplist.Errorf(toplist.ETRANSPORT, "rendering %s: %v", url, err)
}

func (f *Fetcher) render(ctx context.Context, url string) (string, error) {
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources and terminates the browser process.
// Calling Close more than once is a no-op.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
