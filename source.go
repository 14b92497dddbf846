package garagekb

import (
	"context"
	"strings"
	"unicode"
)

// SourceKind identifies the shape of content a source produces.
type SourceKind string

// Source kinds.
const (
	KindVideo     SourceKind = "video"
	KindForum     SourceKind = "forum"
	KindArticle   SourceKind = "article"
	KindGuide     SourceKind = "guide"
	KindCommunity SourceKind = "community"
)

// TrustLevel controls how the relevance classifier gates a source's items.
type TrustLevel int

// Trust levels.
const (
	// TrustDefault items must match the technical vocabulary to be kept.
	TrustDefault TrustLevel = iota

	// TrustCurated items are accepted without keyword gating. The source is
	// pre-filtered upstream (e.g., a targeted video search or a moderated
	// community directory); the exclusion vocabulary still applies.
	TrustCurated
)

// SourceProfile describes a source's provenance and classification rules.
// Adapters attach a profile to every item they emit so the classifier and
// extractor dispatch on explicit fields rather than sniffing source names.
type SourceProfile struct {
	Name     string
	Category string
	Kind     SourceKind
	Trust    TrustLevel
}

// Slug returns a lowercase identifier-safe form of the source name, used as
// an article ID prefix.
func (p SourceProfile) Slug() string {
	var sb strings.Builder
	prev := false
	for _, r := range strings.ToLower(p.Name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prev = false
		} else if !prev && sb.Len() > 0 {
			sb.WriteRune('_')
			prev = true
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}

// RawItem is an unnormalized content record as produced by a source adapter.
// The core consumes only this shape; transport formats never cross into it.
type RawItem struct {
	Profile SourceProfile

	// Title and Body may contain markup; the normalizer strips it.
	Title string
	Body  string

	Link string

	// Published is an RFC 3339 UTC timestamp, or empty when the source date
	// was missing or unparseable. Adapters parse source formats at ingestion.
	Published string

	// NaturalKey is the most stable identity the source offers: a video ID,
	// a forum entry ID, a file basename. Empty when the source has none.
	NaturalKey string

	// MediaURL is a thumbnail or enclosure URL from structured metadata.
	MediaURL string

	// Brands lists vehicle brand keys the source declared explicitly
	// (community write-ups carry these in their header block).
	Brands []string
}

// SourceAdapter produces raw items from one external source.
//
// Adapters own all transport concerns: fetching, feed/DOM parsing, retries.
// Returning zero items is a normal, silently-tolerated result; an error marks
// the whole source as failed for the run.
type SourceAdapter interface {
	Profile() SourceProfile
	Fetch(ctx context.Context) ([]RawItem, error)
}

// Fetcher retrieves the raw body of a URL.
type Fetcher interface {
	// Fetch returns the response body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases client resources.
	Close() error
}

// Normalizer produces plain, length-capped text from raw source text.
// Implementations are pure: malformed input yields best-effort output and
// empty input yields the empty string. Normalization is idempotent.
type Normalizer interface {
	Normalize(raw string) string
}

// DomainLimiter provides per-domain rate limiting for source adapters.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
