package pipeline

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/garagekb/garagekb"
)

// ComputeID derives a stable article identity from the source's natural key,
// falling back to a hash of the link, then to the item's position within its
// source batch. Fallback keys are only unique within one source, so the
// fallback prefix always carries the source slug; ids never collide across
// sources. The ordinal fallback is only positionally stable; items without
// either a natural key or a link cannot do better.
func ComputeID(item garagekb.RawItem, ordinal int) string {
	prefix := kindPrefix(item.Profile)
	key := item.NaturalKey
	if key == "" {
		if slug := item.Profile.Slug(); slug != "" && slug != prefix {
			prefix += "_" + slug
		}
		if item.Link != "" {
			key = fmt.Sprintf("%x", xxhash.Sum64String(item.Link))
		} else {
			key = strconv.Itoa(ordinal)
		}
	}
	return prefix + "_" + key
}

func kindPrefix(p garagekb.SourceProfile) string {
	switch p.Kind {
	case garagekb.KindVideo:
		return "yt"
	case garagekb.KindCommunity:
		return "community"
	}
	if slug := p.Slug(); slug != "" {
		return slug
	}
	return string(p.Kind)
}

// Dedupe drops every article whose exact ID was already seen, keeping the
// first occurrence. Input order is source registration order, so earlier
// sources win ties.
func Dedupe(articles []*garagekb.Article) (kept []*garagekb.Article, dropped int) {
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.ID]; ok {
			dropped++
			continue
		}
		seen[a.ID] = struct{}{}
		kept = append(kept, a)
	}
	return kept, dropped
}
