// Package bloom provides approximate link deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks links seen across sources during one aggregation run. It is
// used for duplicate-link accounting in run statistics; article identity
// dedup stays exact and lives in the pipeline.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected links with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// AddIfNew records the link and reports whether it was previously unseen.
// False "already seen" answers are possible; false "new" answers are not.
func (f *Filter) AddIfNew(link string) bool {
	return !f.f.TestAndAddString(link)
}

// Test returns true if the link might have been added.
func (f *Filter) Test(link string) bool {
	return f.f.TestString(link)
}

// EstimatedCount returns the approximate number of links in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
