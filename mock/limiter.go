package mock

import (
	"context"

	"github.com/profilepeek/profilepeek"
)

var _ profilepeek.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of profilepeek.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
