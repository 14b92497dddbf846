// Package goquery provides DOM-based implementations of text normalization,
// image extraction, and HTML forum scraping.
package goquery

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/garagekb/garagekb"
)

// DefaultMaxLen caps normalized text length in runes, suffix included.
const DefaultMaxLen = 2000

// truncationSuffix marks text shortened by the normalizer.
const truncationSuffix = "…"

// tagPattern is the fallback markup stripper for input the HTML parser rejects.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Ensure Sanitizer implements garagekb.Normalizer at compile time.
var _ garagekb.Normalizer = (*Sanitizer)(nil)

// Sanitizer normalizes raw source text to plain, length-capped text: it
// decodes HTML entities, strips markup, collapses whitespace runs to single
// spaces, and truncates at a word boundary. Normalize is pure and never
// fails; malformed input yields best-effort output.
type Sanitizer struct {
	maxLen int
}

// NewSanitizer creates a Sanitizer with the given rune cap.
// Non-positive values use DefaultMaxLen.
func NewSanitizer(maxLen int) *Sanitizer {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Sanitizer{maxLen: maxLen}
}

// Normalize returns the plain-text form of raw. Empty or blank input yields
// the empty string. Normalize(Normalize(x)) == Normalize(x) for plain text
// and for markup: entities are decoded exactly once per pass, so input whose
// text content itself encodes markup (&lt;b&gt;) normalizes to literal tag
// text, which a second pass would strip as markup.
func (s *Sanitizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := extractText(raw)

	// Collapse whitespace runs (including newlines from block elements).
	text = strings.Join(strings.Fields(text), " ")

	return s.truncate(text)
}

// extractText strips markup and decodes entities. The DOM parser handles
// both in one pass; parse failures fall back to pattern stripping.
func extractText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return html.UnescapeString(tagPattern.ReplaceAllString(raw, " "))
	}
	return doc.Text()
}

// truncate cuts text to the rune cap at a word boundary, appending the
// truncation suffix. The suffix counts against the cap so re-normalizing
// already-truncated text is a no-op.
func (s *Sanitizer) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= s.maxLen {
		return text
	}

	cut := runes[:s.maxLen-len([]rune(truncationSuffix))]
	if idx := lastSpace(cut); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(string(cut), " ") + truncationSuffix
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
