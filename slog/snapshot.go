package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/toplist"
)

// Ensure LoggingSnapshotService implements toplist.SnapshotService.
var _ toplist.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService and logs writes.
// Reads are delegated without logging since they happen on every catalog
// request.
type LoggingSnapshotService struct {
	next   toplist.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next toplist.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// CreateSnapshot delegates to the wrapped service and logs the stored snapshot.
func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, snapshot *toplist.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot stored",
			"source", snapshot.SourceURL,
			"id", snapshot.ID,
			"layout", string(snapshot.Layout),
			"count", len(snapshot.Candidates),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, snapshot)
}

// FindLatestSnapshot delegates to the wrapped service.
func (s *LoggingSnapshotService) FindLatestSnapshot(ctx context.Context, sourceURL string) (*toplist.Snapshot, error) {
	return s.next.FindLatestSnapshot(ctx, sourceURL)
}

// TouchSnapshot delegates to the wrapped service and logs the unchanged fetch.
func (s *LoggingSnapshotService) TouchSnapshot(ctx context.Context, id string, fetchedAt time.Time) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot unchanged",
			"id", id,
			"fetched_at", fetchedAt,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.TouchSnapshot(ctx, id, fetchedAt)
}

// FindSnapshots delegates to the wrapped service.
func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter toplist.SnapshotFilter) ([]*toplist.Snapshot, error) {
	return s.next.FindSnapshots(ctx, filter)
}

// DeleteSnapshots delegates to the wrapped service and logs how many were removed.
func (s *LoggingSnapshotService) DeleteSnapshots(ctx context.Context, sourceURL string, keep int) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshots pruned",
			"source", sourceURL,
			"keep", keep,
			"deleted", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshots(ctx, sourceURL, keep)
}
