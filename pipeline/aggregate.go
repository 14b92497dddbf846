package pipeline

import (
	"sort"
	"time"

	"github.com/garagekb/garagekb"
)

// Aggregate merges deduplicated articles into a single snapshot: newest
// first, capped at maxTotal, with inverted indexes and summary statistics
// computed over exactly the retained set. An empty input is an error; a
// snapshot with zero articles must never replace a previous good one.
func Aggregate(articles []*garagekb.Article, maxTotal int, now time.Time) (*garagekb.Snapshot, error) {
	if len(articles) == 0 {
		return nil, garagekb.Errorf(garagekb.EUNAVAILABLE, "no usable items from any source")
	}

	sorted := make([]*garagekb.Article, len(articles))
	copy(sorted, articles)
	// Published is RFC3339 UTC (or empty), so lexicographic descending order
	// is chronological descending with undated items last. The stable sort
	// keeps source registration order among equal timestamps.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published > sorted[j].Published
	})
	if maxTotal > 0 && len(sorted) > maxTotal {
		sorted = sorted[:maxTotal]
	}

	indexes := buildIndexes(sorted)
	return &garagekb.Snapshot{
		Articles:    sorted,
		Indexes:     indexes,
		Stats:       computeStats(sorted, indexes),
		LastUpdated: now.UTC().Format(time.RFC3339),
		Version:     garagekb.SnapshotVersion,
	}, nil
}

func buildIndexes(articles []*garagekb.Article) garagekb.Indexes {
	idx := garagekb.Indexes{
		Categories: make(map[string][]string),
		Sources:    make(map[string][]string),
		Types:      make(map[string][]string),
		Brands:     make(map[string][]string),
		ErrorCodes: make(map[string][]string),
		Problems:   make(map[string][]string),
	}
	for _, a := range articles {
		indexAdd(idx.Categories, a.Category, a.ID)
		indexAdd(idx.Sources, a.Source, a.ID)
		indexAdd(idx.Types, string(a.ContentType), a.ID)
		for _, brand := range a.Brands {
			indexAdd(idx.Brands, brand, a.ID)
		}
		for _, code := range a.ErrorCodes {
			indexAdd(idx.ErrorCodes, code, a.ID)
		}
		for _, tag := range a.ProblemTags {
			indexAdd(idx.Problems, tag, a.ID)
		}
	}
	return idx
}

func indexAdd(m map[string][]string, key, id string) {
	if key == "" {
		return
	}
	m[key] = append(m[key], id)
}

func computeStats(articles []*garagekb.Article, idx garagekb.Indexes) garagekb.Stats {
	stats := garagekb.Stats{
		TotalArticles:   len(articles),
		TotalCategories: len(idx.Categories),
		TotalSources:    len(idx.Sources),
		TotalBrands:     len(idx.Brands),
		TotalErrorCodes: len(idx.ErrorCodes),
	}
	for _, a := range articles {
		switch a.SourceType {
		case garagekb.KindVideo:
			stats.Videos++
		case garagekb.KindForum:
			stats.Forums++
		case garagekb.KindCommunity:
			stats.Community++
		default:
			stats.Articles++
		}
	}
	return stats
}
