package http

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/garagekb/garagekb"
	"github.com/garagekb/garagekb/etree"
)

// Ensure FeedAdapter implements garagekb.SourceAdapter at compile time.
var _ garagekb.SourceAdapter = (*FeedAdapter)(nil)

// feedTimeLayouts covers the timestamp formats the configured sources emit.
var feedTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05",
}

// FeedAdapter reads one remote RSS or Atom feed and emits raw items. Source
// timestamps are normalized to RFC 3339 UTC at ingestion; values in no known
// format become empty and sort as oldest downstream.
type FeedAdapter struct {
	fetcher garagekb.Fetcher
	limiter garagekb.DomainLimiter
	profile garagekb.SourceProfile
	url     string
	limit   int
}

// NewFeedAdapter creates an adapter for one feed URL, emitting at most limit
// items per fetch. The limiter may be nil.
func NewFeedAdapter(fetcher garagekb.Fetcher, limiter garagekb.DomainLimiter, profile garagekb.SourceProfile, feedURL string, limit int) *FeedAdapter {
	return &FeedAdapter{
		fetcher: fetcher,
		limiter: limiter,
		profile: profile,
		url:     feedURL,
		limit:   limit,
	}
}

// Profile returns the source profile attached to fetched items.
func (a *FeedAdapter) Profile() garagekb.SourceProfile {
	return a.profile
}

// Fetch retrieves and parses the feed.
func (a *FeedAdapter) Fetch(ctx context.Context) ([]garagekb.RawItem, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, domainOf(a.url)); err != nil {
			return nil, err
		}
	}

	body, err := a.fetcher.Fetch(ctx, a.url)
	if err != nil {
		return nil, err
	}

	entries, err := etree.Parse(body)
	if err != nil {
		return nil, err
	}

	items := make([]garagekb.RawItem, 0, len(entries))
	for _, e := range entries {
		if a.limit > 0 && len(items) >= a.limit {
			break
		}
		items = append(items, garagekb.RawItem{
			Profile:    a.profile,
			Title:      e.Title,
			Body:       e.Summary,
			Link:       e.Link,
			Published:  NormalizeTime(e.Published),
			NaturalKey: a.naturalKey(e),
			MediaURL:   e.MediaURL,
		})
	}
	return items, nil
}

// naturalKey picks the most stable identity the entry offers: the video ID
// for video sources, otherwise the tail of the entry's GUID.
func (a *FeedAdapter) naturalKey(e etree.Entry) string {
	if e.VideoID != "" {
		return e.VideoID
	}
	if a.profile.Kind == garagekb.KindVideo {
		if id := VideoIDFromLink(e.Link); id != "" {
			return id
		}
	}
	return guidTail(e.ID)
}

// guidTail returns the last non-empty path segment of a GUID, the part that
// survives feed URL reshuffles. Non-URL GUIDs are used whole.
func guidTail(guid string) string {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return ""
	}
	trimmed := strings.TrimRight(guid, "/")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx != -1 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// VideoIDFromLink extracts the video ID from a YouTube watch URL.
// Returns the empty string when the link has no v parameter.
func VideoIDFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if !strings.Contains(u.Host, "youtube.com") {
		return ""
	}
	return u.Query().Get("v")
}

// NormalizeTime parses a source timestamp and re-emits it as RFC 3339 UTC.
// Unknown formats yield the empty string.
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
