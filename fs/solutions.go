// Package fs provides file-based source and storage implementations: the
// community write-up adapter and the atomic snapshot writer.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/garagekb/garagekb"
)

// excerptMaxLen caps the raw body excerpt taken from a write-up. The
// normalizer applies the real summary cap later.
const excerptMaxLen = 400

// headerScanLines is how deep into a write-up the metadata fields may appear.
const headerScanLines = 10

// Ensure SolutionsDir implements garagekb.SourceAdapter at compile time.
var _ garagekb.SourceAdapter = (*SolutionsDir)(nil)

// SolutionsDir reads community repair write-ups from a directory tree of
// markdown files. Each file starts with a title line (# Title) optionally
// followed by **Author:**, **Date:** and **Brands:** fields; the first path
// segment under the root names the item's category.
type SolutionsDir struct {
	dir     string
	profile garagekb.SourceProfile
}

// NewSolutionsDir creates an adapter reading write-ups under dir.
func NewSolutionsDir(dir string, profile garagekb.SourceProfile) *SolutionsDir {
	return &SolutionsDir{dir: dir, profile: profile}
}

// Profile returns the source profile attached to write-up items.
func (s *SolutionsDir) Profile() garagekb.SourceProfile {
	return s.profile
}

// Fetch walks the directory and parses every markdown write-up. A missing
// directory yields zero items, not an error; individual unreadable files are
// skipped so one bad write-up cannot take the whole source down.
func (s *SolutionsDir) Fetch(ctx context.Context) ([]garagekb.RawItem, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, nil
	}

	var items []garagekb.RawItem
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		if strings.Contains(strings.ToUpper(d.Name()), "README") {
			return nil
		}

		item, ok := s.parseFile(path)
		if ok {
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SolutionsDir) parseFile(path string) (garagekb.RawItem, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return garagekb.RawItem{}, false
	}

	lines := strings.Split(string(data), "\n")
	title := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), "# "))
	if title == "" {
		return garagekb.RawItem{}, false
	}

	var date string
	var brands []string
	scan := lines[1:]
	if len(scan) > headerScanLines {
		scan = scan[:headerScanLines]
	}
	for _, line := range scan {
		switch {
		case strings.HasPrefix(line, "**Date:**"):
			date = strings.TrimSpace(strings.TrimPrefix(line, "**Date:**"))
		case strings.HasPrefix(line, "**Brands:**"):
			for _, b := range strings.Split(strings.TrimPrefix(line, "**Brands:**"), ",") {
				if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
					brands = append(brands, b)
				}
			}
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), ".md")

	profile := s.profile
	if cat := s.categoryOf(path); cat != "" {
		profile.Category = cat
	}

	return garagekb.RawItem{
		Profile:    profile,
		Title:      title,
		Body:       excerpt(lines[1:]),
		Link:       "#" + base,
		Published:  publishedAt(path, date),
		NaturalKey: base,
		Brands:     brands,
	}, true
}

// categoryOf derives a category from the first path segment under the root,
// "no_start" -> "No Start". Files directly under the root keep the profile
// category.
func (s *SolutionsDir) categoryOf(path string) string {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return ""
	}
	return titleCase(strings.ReplaceAll(parts[0], "_", " "))
}

// excerpt joins the body lines after the header block, skipping metadata and
// heading lines, capped at excerptMaxLen runes.
func excerpt(lines []string) string {
	var parts []string
	total := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "**") {
			continue
		}
		parts = append(parts, line)
		total += len([]rune(line))
		if total >= excerptMaxLen {
			break
		}
	}
	text := strings.Join(parts, " ")
	if runes := []rune(text); len(runes) > excerptMaxLen {
		return string(runes[:excerptMaxLen])
	}
	return text
}

// publishedAt parses the declared date, falling back to the file's
// modification time.
func publishedAt(path, declared string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, declared); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().UTC().Format(time.RFC3339)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
