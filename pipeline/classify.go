// Package pipeline contains the content normalization, classification, and
// indexing core: it decides which raw items qualify as technical repair
// content, extracts structured metadata, assigns stable identities, and
// merges all sources into one indexed snapshot.
package pipeline

import (
	"strings"

	"github.com/garagekb/garagekb"
)

// SkipReason explains why the pipeline dropped an item. Every drop is typed
// and counted; nothing disappears silently.
type SkipReason string

// Skip reasons.
const (
	SkipNone        SkipReason = ""
	SkipNoTitle     SkipReason = "no-title"
	SkipExcluded    SkipReason = "excluded-term"
	SkipNoTechMatch SkipReason = "no-tech-match"
	SkipDuplicate   SkipReason = "duplicate-id"
	SkipInvalid     SkipReason = "invalid"
)

// Classifier decides whether an item qualifies as technical/instructional
// content. Behavior is a pure function of (input, configuration).
type Classifier struct {
	cfg *garagekb.Config
}

// NewClassifier creates a classifier over the given configuration.
func NewClassifier(cfg *garagekb.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify evaluates the relevance policy in order, short-circuiting:
//
//  1. An empty title rejects outright; there is no identity and no content.
//  2. Any exclusion-vocabulary term in the combined lowercased text rejects
//     unconditionally. This rule dominates all others.
//  3. Curated sources are accepted as-is; they are pre-filtered upstream and
//     keyword-gating them would drop good content.
//  4. Everything else needs at least one technical-vocabulary match.
func (c *Classifier) Classify(title, summary string, profile garagekb.SourceProfile) SkipReason {
	if strings.TrimSpace(title) == "" {
		return SkipNoTitle
	}

	text := strings.ToLower(title + " " + summary)

	for _, term := range c.cfg.ExcludeTerms {
		if strings.Contains(text, strings.ToLower(term)) {
			return SkipExcluded
		}
	}

	if profile.Trust == garagekb.TrustCurated {
		return SkipNone
	}

	for _, term := range c.cfg.TechTerms {
		if strings.Contains(text, strings.ToLower(term)) {
			return SkipNone
		}
	}
	return SkipNoTechMatch
}
