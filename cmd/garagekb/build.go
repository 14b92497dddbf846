package main

import (
	"fmt"

	"github.com/garagekb/garagekb"
	"github.com/garagekb/garagekb/bloom"
	"github.com/garagekb/garagekb/fs"
	gkgoquery "github.com/garagekb/garagekb/goquery"
	gkhttp "github.com/garagekb/garagekb/http"
	"github.com/garagekb/garagekb/pipeline"
	gkslog "github.com/garagekb/garagekb/slog"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	fetcher := gkhttp.NewFetcher()
	defer fetcher.Close()

	limiter := pipeline.NewDomainLimiter(c.RPS)

	adapters := make([]garagekb.SourceAdapter, 0, len(deps.Config.Sources))
	for _, src := range deps.Config.Sources {
		adapter, err := buildAdapter(src, fetcher, limiter, deps.Config.MaxPerSource)
		if err != nil {
			return err
		}
		adapters = append(adapters, gkslog.NewLoggingAdapter(adapter, deps.Logger))
	}

	writer := fs.NewSnapshotWriter(c.Out)

	p := &pipeline.Pipeline{
		Config:      deps.Config,
		Adapters:    adapters,
		Store:       gkslog.NewLoggingStore(writer, deps.Logger),
		Runs:        deps.Runs,
		Links:       bloom.NewFilter(100_000, 0.01),
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
	}

	snapshot, report, err := p.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", garagekb.ErrorMessage(err))
		return err
	}

	if c.Glossaries {
		if err := writer.WriteGlossaries(deps.Ctx, deps.Config); err != nil {
			return fmt.Errorf("failed to write glossaries: %w", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d articles to %s\n", len(snapshot.Articles), c.Out)
	fmt.Fprintf(deps.Stdout, "Sources: %d ok, %d failed\n", report.Sources-report.FailedSources, report.FailedSources)
	fmt.Fprintf(deps.Stdout, "Items: %d fetched, %d kept, %d excluded, %d off-topic, %d untitled, %d duplicates\n",
		report.Fetched, report.Kept, report.SkippedExcluded, report.SkippedNoMatch,
		report.SkippedNoTitle, report.SkippedDuplicate)

	return nil
}

// buildAdapter picks the adapter implementation for a configured source:
// community sources read local write-up directories, scrape sources parse
// question listing pages, everything else is a feed.
func buildAdapter(src garagekb.SourceConfig, fetcher garagekb.Fetcher, limiter garagekb.DomainLimiter, limit int) (garagekb.SourceAdapter, error) {
	profile := src.Profile()
	switch {
	case src.Kind == garagekb.KindCommunity:
		if src.Path == "" {
			return nil, garagekb.Errorf(garagekb.EINVALID, "community source %s requires a path", src.Name)
		}
		return fs.NewSolutionsDir(src.Path, profile), nil
	case src.Scrape:
		if src.URL == "" {
			return nil, garagekb.Errorf(garagekb.EINVALID, "source %s requires a url", src.Name)
		}
		return gkgoquery.NewForumScraper(fetcher, limiter, profile, src.URL, limit), nil
	default:
		if src.URL == "" {
			return nil, garagekb.Errorf(garagekb.EINVALID, "source %s requires a url", src.Name)
		}
		return gkhttp.NewFeedAdapter(fetcher, limiter, profile, src.URL, limit), nil
	}
}
