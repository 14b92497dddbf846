package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/garagekb/garagekb"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ garagekb.RunRecorder = (*RunService)(nil)

// RunService implements garagekb.RunRecorder using SQLite. It keeps the
// history of aggregation runs so regressions in source health or filter
// behavior are visible across runs.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// RecordRun persists one run report. An empty report ID is assigned here.
func (s *RunService) RecordRun(ctx context.Context, report *garagekb.RunReport) error {
	if report == nil {
		return garagekb.Errorf(garagekb.EINVALID, "run report is required")
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.StartedAt.IsZero() {
		report.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, started_at, duration_ms, sources, failed_sources, fetched, kept,
			skipped_excluded, skipped_no_match, skipped_no_title, skipped_duplicate,
			failed_items, duplicate_links
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.StartedAt.UTC().Format(time.RFC3339), report.Duration.Milliseconds(),
		report.Sources, report.FailedSources, report.Fetched, report.Kept,
		report.SkippedExcluded, report.SkippedNoMatch, report.SkippedNoTitle,
		report.SkippedDuplicate, report.FailedItems, report.DuplicateLinks)

	return err
}

// ListRuns returns the most recent runs, newest first.
func (s *RunService) ListRuns(ctx context.Context, limit int) ([]*garagekb.RunReport, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, sources, failed_sources, fetched, kept,
			skipped_excluded, skipped_no_match, skipped_no_title, skipped_duplicate,
			failed_items, duplicate_links
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*garagekb.RunReport
	for rows.Next() {
		var report garagekb.RunReport
		var startedAt string
		var durationMS int64

		if err := rows.Scan(&report.ID, &startedAt, &durationMS,
			&report.Sources, &report.FailedSources, &report.Fetched, &report.Kept,
			&report.SkippedExcluded, &report.SkippedNoMatch, &report.SkippedNoTitle,
			&report.SkippedDuplicate, &report.FailedItems, &report.DuplicateLinks); err != nil {
			return nil, err
		}

		report.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		report.Duration = time.Duration(durationMS) * time.Millisecond

		reports = append(reports, &report)
	}

	return reports, rows.Err()
}
