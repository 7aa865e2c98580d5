package mock

import (
	"context"

	"github.com/profilepeek/profilepeek"
)

var _ profilepeek.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of profilepeek.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, username string) (string, error)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, username string) (string, error) {
	return s.ExtractFn(ctx, username)
}
