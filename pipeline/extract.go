package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/garagekb/garagekb"
	gkgoquery "github.com/garagekb/garagekb/goquery"
)

// codePattern matches OBD-II diagnostic trouble codes: one system letter
// (P powertrain, B body, C chassis, U network) followed by four digits.
var codePattern = regexp.MustCompile(`\b[PBUC][0-9]{4}\b`)

// Extractor pulls structured metadata out of normalized text. All matching
// is case-insensitive substring search over the configured vocabularies.
type Extractor struct {
	cfg *garagekb.Config
}

// NewExtractor creates an extractor over the given configuration.
func NewExtractor(cfg *garagekb.Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Codes returns the sorted union of glossary codes appearing in the text and
// syntactic DTC pattern matches. A code does not need a glossary entry to be
// indexed; the pattern catches codes the glossary has never heard of.
func (e *Extractor) Codes(text string) []string {
	upper := strings.ToUpper(text)
	set := make(map[string]struct{})
	for code := range e.cfg.Codes {
		if strings.Contains(upper, strings.ToUpper(code)) {
			set[strings.ToUpper(code)] = struct{}{}
		}
	}
	for _, m := range codePattern.FindAllString(upper, -1) {
		set[m] = struct{}{}
	}
	return sortedKeys(set)
}

// Brands returns the sorted brand keys whose key, display name, or any model
// name appears in the text.
func (e *Extractor) Brands(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for key, brand := range e.cfg.Brands {
		if brandMatches(lower, key, brand) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func brandMatches(lower, key string, brand garagekb.Brand) bool {
	if strings.Contains(lower, strings.ToLower(key)) {
		return true
	}
	if brand.Name != "" && strings.Contains(lower, strings.ToLower(brand.Name)) {
		return true
	}
	for _, model := range brand.Models {
		if strings.Contains(lower, strings.ToLower(model)) {
			return true
		}
	}
	return false
}

// Problems assigns problem-taxonomy tags in taxonomy order. Every article
// gets at least one tag; text matching nothing is tagged uncategorized so
// the problems index always covers the full article set.
func (e *Extractor) Problems(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, cat := range e.cfg.Problems {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				tags = append(tags, cat.Tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		return []string{garagekb.UncategorizedTag}
	}
	return tags
}

// Symptoms returns the configured symptom phrases found in the text, in
// vocabulary order.
func (e *Extractor) Symptoms(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, symptom := range e.cfg.Symptoms {
		if strings.Contains(lower, strings.ToLower(symptom)) {
			out = append(out, symptom)
		}
	}
	return out
}

// ContentTypeFor maps a source kind to the content type recorded on
// articles and used by the types index.
func ContentTypeFor(kind garagekb.SourceKind) garagekb.ContentType {
	switch kind {
	case garagekb.KindVideo:
		return garagekb.ContentVideo
	case garagekb.KindForum:
		return garagekb.ContentForumPost
	case garagekb.KindGuide:
		return garagekb.ContentReference
	default:
		return garagekb.ContentArticle
	}
}

// ExtractImage picks an illustrative image URL for the item, preferring the
// platform thumbnail for videos, then the feed media URL, then the first
// image embedded in the raw body. Returns "" when nothing is available.
func ExtractImage(item garagekb.RawItem) string {
	if item.Profile.Kind == garagekb.KindVideo && item.NaturalKey != "" {
		return "https://img.youtube.com/vi/" + item.NaturalKey + "/hqdefault.jpg"
	}
	if item.MediaURL != "" {
		return item.MediaURL
	}
	return gkgoquery.FirstImageURL(item.Body)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
