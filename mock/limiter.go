package mock

import (
	"context"

	"github.com/fwojciec/toplist"
)

var _ toplist.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of toplist.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
