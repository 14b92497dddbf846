package mock

import (
	"context"

	"github.com/garagekb/garagekb"
)

var _ garagekb.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of garagekb.SnapshotStore.
type SnapshotStore struct {
	WriteSnapshotFn func(ctx context.Context, snap *garagekb.Snapshot) error
}

func (s *SnapshotStore) WriteSnapshot(ctx context.Context, snap *garagekb.Snapshot) error {
	return s.WriteSnapshotFn(ctx, snap)
}

var _ garagekb.RunRecorder = (*RunRecorder)(nil)

// RunRecorder is a mock implementation of garagekb.RunRecorder.
type RunRecorder struct {
	RecordRunFn func(ctx context.Context, report *garagekb.RunReport) error
	ListRunsFn  func(ctx context.Context, limit int) ([]*garagekb.RunReport, error)
}

func (r *RunRecorder) RecordRun(ctx context.Context, report *garagekb.RunReport) error {
	return r.RecordRunFn(ctx, report)
}

func (r *RunRecorder) ListRuns(ctx context.Context, limit int) ([]*garagekb.RunReport, error) {
	return r.ListRunsFn(ctx, limit)
}
