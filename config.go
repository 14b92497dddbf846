package garagekb

import "strings"

// Brand describes a vehicle brand and its model names for text matching.
type Brand struct {
	Name   string   `json:"name" yaml:"name"`
	Models []string `json:"models" yaml:"models"`
}

// ProblemCategory is one entry of the problem taxonomy: a tag plus the
// keywords that place an article under it. Taxonomy order is significant for
// deterministic tag ordering.
type ProblemCategory struct {
	Tag      string   `json:"tag" yaml:"tag"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// SourceConfig describes one configured source.
type SourceConfig struct {
	Name     string     `yaml:"name"`
	URL      string     `yaml:"url"`
	Category string     `yaml:"category"`
	Kind     SourceKind `yaml:"kind"`
	Trusted  bool       `yaml:"trusted"`

	// Scrape marks forum sources read by HTML scraping rather than a feed.
	Scrape bool `yaml:"scrape"`

	// Path points community sources at a local write-up directory.
	Path string `yaml:"path"`
}

// Profile returns the source profile adapters attach to their items.
func (s SourceConfig) Profile() SourceProfile {
	trust := TrustDefault
	if s.Trusted {
		trust = TrustCurated
	}
	return SourceProfile{
		Name:     s.Name,
		Category: s.Category,
		Kind:     s.Kind,
		Trust:    trust,
	}
}

// Config holds the pipeline's immutable configuration: vocabularies,
// taxonomies, dictionaries, and caps. Classifier and extractor behavior is a
// pure function of (input, Config); nothing here is ambient global state.
type Config struct {
	// MaxPerSource caps items taken from a single source.
	MaxPerSource int `yaml:"maxPerSource"`

	// MaxTotal caps the aggregated article count; oldest overflow is dropped.
	MaxTotal int `yaml:"maxTotal"`

	// SummaryMaxLen caps normalized text length in runes, suffix included.
	SummaryMaxLen int `yaml:"summaryMaxLen"`

	// ExcludeTerms reject an item unconditionally when any appears in its
	// combined lowercased text.
	ExcludeTerms []string `yaml:"excludeTerms"`

	// TechTerms mark instructional/technical content; untrusted sources need
	// at least one match.
	TechTerms []string `yaml:"techTerms"`

	// Symptoms is the symptom keyword vocabulary.
	Symptoms []string `yaml:"symptoms"`

	// Brands maps brand keys to canonical names and model lists.
	Brands map[string]Brand `yaml:"brands"`

	// Codes is the diagnostic trouble code glossary (code -> description).
	Codes map[string]string `yaml:"codes"`

	// Problems is the ordered problem taxonomy.
	Problems []ProblemCategory `yaml:"problems"`

	// Sources lists the configured content sources.
	Sources []SourceConfig `yaml:"sources"`
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	if c.MaxPerSource <= 0 {
		return Errorf(EINVALID, "maxPerSource must be positive")
	}
	if c.MaxTotal <= 0 {
		return Errorf(EINVALID, "maxTotal must be positive")
	}
	if c.SummaryMaxLen <= 0 {
		return Errorf(EINVALID, "summaryMaxLen must be positive")
	}
	if len(c.Sources) == 0 {
		return Errorf(EINVALID, "at least one source required")
	}
	return nil
}

// CodeSystem returns the vehicle system a diagnostic trouble code belongs to,
// derived from its first letter (P0300 -> "Powertrain").
func CodeSystem(code string) string {
	if code == "" {
		return "Unknown"
	}
	switch strings.ToUpper(code)[0] {
	case 'P':
		return "Powertrain"
	case 'B':
		return "Body"
	case 'C':
		return "Chassis"
	case 'U':
		return "Network"
	}
	return "Unknown"
}
