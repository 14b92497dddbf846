package garagekb

import (
	"context"
	"time"
)

// SnapshotVersion tags the persisted snapshot format.
const SnapshotVersion = "6.0"

// Snapshot is the single persisted document containing all articles, derived
// indexes, and statistics for one aggregation run. A snapshot is always built
// fresh and fully replaces its predecessor; it is never merged or updated
// incrementally.
type Snapshot struct {
	Articles    []*Article `json:"articles"`
	Indexes     Indexes    `json:"indexes"`
	Stats       Stats      `json:"stats"`
	LastUpdated string     `json:"lastUpdated"`
	Version     string     `json:"version"`
}

// Indexes maps index keys to ordered lists of article IDs carrying that key.
// Indexes are derived in a single pass over the final article list and are
// never authored directly.
type Indexes struct {
	Categories map[string][]string `json:"categories"`
	Sources    map[string][]string `json:"sources"`
	Types      map[string][]string `json:"types"`
	Brands     map[string][]string `json:"brands"`
	ErrorCodes map[string][]string `json:"errorCodes"`
	Problems   map[string][]string `json:"problems"`
}

// Stats summarizes one snapshot.
type Stats struct {
	TotalArticles   int `json:"totalArticles"`
	TotalCategories int `json:"totalCategories"`
	TotalSources    int `json:"totalSources"`
	TotalBrands     int `json:"totalBrands"`
	TotalErrorCodes int `json:"totalErrorCodes"`

	// Per-kind article counts. Guides count as articles.
	Videos    int `json:"videos"`
	Articles  int `json:"articles"`
	Forums    int `json:"forums"`
	Community int `json:"community"`
}

// SnapshotStore persists snapshots. A failed write must leave any prior
// snapshot intact.
type SnapshotStore interface {
	WriteSnapshot(ctx context.Context, snap *Snapshot) error
}

// RunReport records what happened during one aggregation run. Every non-fatal
// skip is counted here so silent data loss stays observable.
type RunReport struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration

	// Source-level accounting.
	Sources       int
	FailedSources int

	// Item-level accounting.
	Fetched          int
	Kept             int
	SkippedExcluded  int
	SkippedNoMatch   int
	SkippedNoTitle   int
	SkippedDuplicate int
	FailedItems      int

	// DuplicateLinks counts items whose link was already contributed by an
	// earlier source. Approximate (Bloom-filter backed); informational only,
	// identity dedup remains exact.
	DuplicateLinks int
}

// RunRecorder persists run reports for later inspection.
type RunRecorder interface {
	// RecordRun stores a report and assigns its ID.
	RecordRun(ctx context.Context, report *RunReport) error

	// ListRuns returns the most recent reports, newest first.
	ListRuns(ctx context.Context, limit int) ([]*RunReport, error)
}
