package mock

import (
	"context"
	"time"

	"github.com/fwojciec/toplist"
)

var _ toplist.ChartLoader = (*ChartLoader)(nil)

// ChartLoader is a mock implementation of toplist.ChartLoader.
type ChartLoader struct {
	LoadChartFn func(ctx context.Context, url string) (*toplist.Snapshot, error)
}

func (l *ChartLoader) LoadChart(ctx context.Context, url string) (*toplist.Snapshot, error) {
	return l.LoadChartFn(ctx, url)
}

var _ toplist.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of toplist.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, snapshot *toplist.Snapshot) error
	FindLatestSnapshotFn func(ctx context.Context, sourceURL string) (*toplist.Snapshot, error)
	TouchSnapshotFn      func(ctx context.Context, id string, fetchedAt time.Time) error
	FindSnapshotsFn      func(ctx context.Context, filter toplist.SnapshotFilter) ([]*toplist.Snapshot, error)
	DeleteSnapshotsFn    func(ctx context.Context, sourceURL string, keep int) (int, error)
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *toplist.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindLatestSnapshot(ctx context.Context, sourceURL string) (*toplist.Snapshot, error) {
	return s.FindLatestSnapshotFn(ctx, sourceURL)
}

func (s *SnapshotService) TouchSnapshot(ctx context.Context, id string, fetchedAt time.Time) error {
	return s.TouchSnapshotFn(ctx, id, fetchedAt)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter toplist.SnapshotFilter) ([]*toplist.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshots(ctx context.Context, sourceURL string, keep int) (int, error) {
	return s.DeleteSnapshotsFn(ctx, sourceURL, keep)
}
