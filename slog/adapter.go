// Package slog provides logging decorators for garagekb services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/garagekb/garagekb"
)

// Ensure LoggingAdapter implements garagekb.SourceAdapter.
var _ garagekb.SourceAdapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps a SourceAdapter with per-source fetch logging.
type LoggingAdapter struct {
	next   garagekb.SourceAdapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next garagekb.SourceAdapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger}
}

// Profile delegates to the wrapped adapter.
func (a *LoggingAdapter) Profile() garagekb.SourceProfile {
	return a.next.Profile()
}

// Fetch delegates to the wrapped adapter and logs the operation.
func (a *LoggingAdapter) Fetch(ctx context.Context) (items []garagekb.RawItem, err error) {
	defer func(begin time.Time) {
		a.logger.Info("source fetch",
			"source", a.next.Profile().Name,
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Fetch(ctx)
}
