package main

import (
	"fmt"
	"time"

	"github.com/garagekb/garagekb"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.ListRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", garagekb.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded yet. Use 'garagekb build' to run the aggregator.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %6s  sources=%d/%d  fetched=%d  kept=%d\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.ID,
			r.Duration.Round(10*time.Millisecond).String(),
			r.Sources-r.FailedSources, r.Sources, r.Fetched, r.Kept)
	}

	return nil
}
