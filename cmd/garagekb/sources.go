package main

import (
	"fmt"

	"github.com/garagekb/garagekb"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, src := range deps.Config.Sources {
		location := src.URL
		if src.Kind == garagekb.KindCommunity {
			location = src.Path
		}
		trust := ""
		if src.Trusted {
			trust = "  [curated]"
		}
		fmt.Fprintf(deps.Stdout, "%-24s %-10s %s%s\n", src.Name, src.Kind, location, trust)
	}

	return nil
}
