package pipeline_test

import (
	"testing"

	"github.com/garagekb/garagekb"
	"github.com/garagekb/garagekb/pipeline"
	"github.com/stretchr/testify/assert"
)

func testConfig() *garagekb.Config {
	return &garagekb.Config{
		MaxPerSource:  10,
		MaxTotal:      100,
		SummaryMaxLen: 2000,
		ExcludeTerms:  []string{"for sale", "giveaway", "politics"},
		TechTerms:     []string{"repair", "misfire", "wiring", "obd", "replace"},
		Symptoms:      []string{"won't start", "check engine light", "rough idle"},
		Brands: map[string]garagekb.Brand{
			"toyota": {Name: "Toyota", Models: []string{"Corolla", "Camry"}},
			"honda":  {Name: "Honda", Models: []string{"Civic", "Accord"}},
			"kia":    {Name: "Kia", Models: []string{"Rio", "Sportage"}},
		},
		Codes: map[string]string{
			"P0300": "Random/multiple cylinder misfire detected",
			"P0420": "Catalyst system efficiency below threshold",
			"U0100": "Lost communication with ECM/PCM",
		},
		Problems: []garagekb.ProblemCategory{
			{Tag: "no-start", Keywords: []string{"won't start", "no crank"}},
			{Tag: "engine", Keywords: []string{"misfire", "rough idle"}},
			{Tag: "electrical", Keywords: []string{"wiring", "battery drain"}},
		},
	}
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := pipeline.NewClassifier(testConfig())
	defaultProfile := garagekb.SourceProfile{Name: "Forum", Kind: garagekb.KindForum}
	curatedProfile := garagekb.SourceProfile{Name: "Channel", Kind: garagekb.KindVideo, Trust: garagekb.TrustCurated}

	t.Run("accepts text with a technical term", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("Alternator repair walkthrough", "step by step", defaultProfile)
		assert.Equal(t, pipeline.SkipNone, reason)
	})

	t.Run("rejects empty title before anything else", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("   ", "misfire repair", defaultProfile)
		assert.Equal(t, pipeline.SkipNoTitle, reason)
	})

	t.Run("exclusion term rejects even with technical terms present", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("Engine repair special, car FOR SALE", "misfire fixed", defaultProfile)
		assert.Equal(t, pipeline.SkipExcluded, reason)
	})

	t.Run("exclusion term rejects even for curated sources", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("Channel giveaway announcement", "", curatedProfile)
		assert.Equal(t, pipeline.SkipExcluded, reason)
	})

	t.Run("curated source passes without technical terms", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("My week at the shop", "a quiet one", curatedProfile)
		assert.Equal(t, pipeline.SkipNone, reason)
	})

	t.Run("default source without technical terms is rejected", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("My week at the shop", "a quiet one", defaultProfile)
		assert.Equal(t, pipeline.SkipNoTechMatch, reason)
	})

	t.Run("matching is case-insensitive across title and summary", func(t *testing.T) {
		t.Parallel()
		reason := c.Classify("Dashboard lights explained", "common OBD readings", defaultProfile)
		assert.Equal(t, pipeline.SkipNone, reason)
	})
}
