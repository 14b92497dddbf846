// Package garagekb aggregates automotive-repair content from heterogeneous
// sources (video feeds, tech articles, forum posts, community write-ups) into
// one normalized, searchable knowledge base snapshot. It classifies which raw
// items are actually technical repair content, extracts structured metadata
// (vehicle brands, diagnostic trouble codes, problem categories),
// deduplicates, and assembles a single indexed document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, etree/, goquery/).
package garagekb
