// Package slog provides logging decorators around the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/profilepeek/profilepeek"
)

// Ensure LoggingStrategy implements profilepeek.Strategy.
var _ profilepeek.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with timing and outcome logging.
type LoggingStrategy struct {
	next   profilepeek.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next profilepeek.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Extract delegates to the wrapped strategy and logs the attempt.
func (s *LoggingStrategy) Extract(ctx context.Context, username string) (string, error) {
	begin := time.Now()
	raw, err := s.next.Extract(ctx, username)
	if err != nil {
		s.logger.Info("extraction attempt",
			"strategy", s.next.Name(),
			"username", username,
			"duration", time.Since(begin),
			"found", false,
			"error", err,
		)
		return raw, err
	}
	s.logger.Info("extraction attempt",
		"strategy", s.next.Name(),
		"username", username,
		"duration", time.Since(begin),
		"found", true,
		"raw", raw,
	)
	return raw, nil
}
