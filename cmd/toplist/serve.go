package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/chart"
	tlhttp "github.com/fwojciec/toplist/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cache := &chart.Cache{
		Loader:    deps.Loader,
		Snapshots: deps.Snapshots,
		MaxAge:    c.MaxAge,
	}

	srv := tlhttp.NewServer()
	srv.Addr = c.listenAddr()
	srv.Manifest = toplist.NewManifest(c.AddonID, version)
	srv.Charts = cache
	srv.ChartURL = deps.ChartURL
	srv.Builder = toplist.MetaBuilder{OMDbAPIKey: c.OMDbAPIKey}
	srv.Logger = deps.Logger

	if err := srv.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: listen on %s: %v\n", srv.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Addon listening on %s\n", srv.URL())
	fmt.Fprintf(deps.Stdout, "Install: %s/manifest.json\n", srv.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})
	if c.Refresh > 0 {
		g.Go(func() error {
			refreshLoop(ctx, cache, deps.ChartURL, deps.LockPath, c.Refresh, deps.Logger)
			return nil
		})
	}

	return g.Wait()
}

// listenAddr applies Port to Addr when set.
func (c *ServeCmd) listenAddr() string {
	if c.Port == "" {
		return c.Addr
	}
	host, _, err := net.SplitHostPort(c.Addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, c.Port)
}

// refreshLoop refreshes the chart every interval until ctx is done.
// Failures are logged and the previous snapshot stays in place.
func refreshLoop(ctx context.Context, cache *chart.Cache, url, lockPath string, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := withRefreshLock(lockPath, func() error {
				_, err := cache.Refresh(ctx, url)
				return err
			})
			if err != nil && ctx.Err() == nil {
				logger.Error("chart refresh failed", "url", url, "err", err)
			}
		}
	}
}
