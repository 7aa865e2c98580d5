package mock

import (
	"context"

	"github.com/profilepeek/profilepeek"
)

var _ profilepeek.FollowerService = (*FollowerService)(nil)

// FollowerService is a mock implementation of profilepeek.FollowerService.
type FollowerService struct {
	FollowersFn func(ctx context.Context, username string) (*profilepeek.FollowerResult, error)
}

func (s *FollowerService) Followers(ctx context.Context, username string) (*profilepeek.FollowerResult, error) {
	return s.FollowersFn(ctx, username)
}
