package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/garagekb/garagekb"
)

// Ensure LoggingStore implements garagekb.SnapshotStore.
var _ garagekb.SnapshotStore = (*LoggingStore)(nil)

// LoggingStore wraps a SnapshotStore with write logging.
type LoggingStore struct {
	next   garagekb.SnapshotStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next garagekb.SnapshotStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// WriteSnapshot delegates to the wrapped store and logs the operation.
func (s *LoggingStore) WriteSnapshot(ctx context.Context, snapshot *garagekb.Snapshot) (err error) {
	defer func(begin time.Time) {
		articles := 0
		if snapshot != nil {
			articles = len(snapshot.Articles)
		}
		s.logger.Info("snapshot write",
			"articles", articles,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteSnapshot(ctx, snapshot)
}
