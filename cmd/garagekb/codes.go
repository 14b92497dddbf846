package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/garagekb/garagekb"
)

// Run executes the codes command.
func (c *CodesCmd) Run(deps *Dependencies) error {
	codes := make([]string, 0, len(deps.Config.Codes))
	for code := range deps.Config.Codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	shown := 0
	for _, code := range codes {
		system := garagekb.CodeSystem(code)
		if c.System != "" && !strings.EqualFold(c.System, system) {
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %s\n", code, system, deps.Config.Codes[code])
		shown++
	}

	if shown == 0 {
		fmt.Fprintln(deps.Stdout, "No matching codes.")
	}

	return nil
}
