package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/garagekb/garagekb"
)

// Ensure SnapshotWriter implements garagekb.SnapshotStore at compile time.
var _ garagekb.SnapshotStore = (*SnapshotWriter)(nil)

// SnapshotWriter persists snapshots as JSON with atomic replace semantics:
// the document is written to a temporary file in the target directory and
// renamed over the destination, so a failed write never disturbs the prior
// snapshot.
type SnapshotWriter struct {
	path string
}

// NewSnapshotWriter creates a writer targeting the given file path.
func NewSnapshotWriter(path string) *SnapshotWriter {
	return &SnapshotWriter{path: path}
}

// WriteSnapshot writes the snapshot. Empty snapshots are refused; an
// all-sources-down run must not replace a good snapshot with nothing.
func (w *SnapshotWriter) WriteSnapshot(ctx context.Context, snap *garagekb.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil || len(snap.Articles) == 0 {
		return garagekb.Errorf(garagekb.EINVALID, "refusing to write snapshot with no articles")
	}
	return writeJSON(w.path, snap)
}

// WriteGlossaries emits the pass-through reference artifacts next to the
// snapshot: the diagnostic-code glossary and the vehicle-brand glossary.
func (w *SnapshotWriter) WriteGlossaries(ctx context.Context, cfg *garagekb.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	now := time.Now().UTC().Format(time.RFC3339)

	codes := struct {
		Codes       map[string]string `json:"codes"`
		Count       int               `json:"count"`
		LastUpdated string            `json:"lastUpdated"`
	}{cfg.Codes, len(cfg.Codes), now}
	if err := writeJSON(filepath.Join(dir, "error-codes.json"), codes); err != nil {
		return err
	}

	brands := struct {
		Brands      map[string]garagekb.Brand `json:"brands"`
		Count       int                       `json:"count"`
		LastUpdated string                    `json:"lastUpdated"`
	}{cfg.Brands, len(cfg.Brands), now}
	return writeJSON(filepath.Join(dir, "vehicles.json"), brands)
}

// writeJSON marshals v and atomically replaces path with the result.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
