package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/garagekb/garagekb"
	"github.com/garagekb/garagekb/bloom"
	gkgoquery "github.com/garagekb/garagekb/goquery"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline orchestrates a full aggregation run: fetch all sources
// concurrently, normalize and classify every item, extract metadata, dedupe,
// aggregate into a snapshot, and persist it.
type Pipeline struct {
	Config      *garagekb.Config
	Normalizer  garagekb.Normalizer
	Adapters    []garagekb.SourceAdapter
	Store       garagekb.SnapshotStore
	Runs        garagekb.RunRecorder
	Links       *bloom.Filter
	Logger      *slog.Logger
	Concurrency int
}

// Run executes the pipeline once. Individual source failures are logged and
// counted but do not abort the run; a run fails only when no source yields a
// single usable item or the snapshot cannot be written. The returned report
// is non-nil even on failure.
func (p *Pipeline) Run(ctx context.Context) (*garagekb.Snapshot, *garagekb.RunReport, error) {
	started := time.Now()
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	normalizer := p.Normalizer
	if normalizer == nil {
		normalizer = gkgoquery.NewSanitizer(p.Config.SummaryMaxLen)
	}

	report := &garagekb.RunReport{
		ID:        uuid.New().String(),
		StartedAt: started.UTC(),
		Sources:   len(p.Adapters),
	}

	results := p.fetchAll(ctx, report, logger)

	classifier := NewClassifier(p.Config)
	extractor := NewExtractor(p.Config)

	var articles []*garagekb.Article
	for _, items := range results {
		for i, item := range items {
			report.Fetched++
			if p.Links != nil && item.Link != "" && !p.Links.AddIfNew(item.Link) {
				report.DuplicateLinks++
			}
			article, reason := p.buildArticle(normalizer, classifier, extractor, item, i)
			switch reason {
			case SkipNone:
				articles = append(articles, article)
			case SkipNoTitle:
				report.SkippedNoTitle++
			case SkipExcluded:
				report.SkippedExcluded++
			case SkipNoTechMatch:
				report.SkippedNoMatch++
			case SkipInvalid:
				report.FailedItems++
			}
		}
	}

	deduped, dropped := Dedupe(articles)
	report.SkippedDuplicate = dropped
	report.Kept = len(deduped)

	snapshot, err := Aggregate(deduped, p.Config.MaxTotal, time.Now())
	if err != nil {
		p.finish(ctx, report, started, logger)
		return nil, report, err
	}

	if p.Store != nil {
		if err := p.Store.WriteSnapshot(ctx, snapshot); err != nil {
			p.finish(ctx, report, started, logger)
			return nil, report, err
		}
	}

	p.finish(ctx, report, started, logger)
	logger.Info("run complete",
		slog.Int("articles", len(snapshot.Articles)),
		slog.Int("sources", report.Sources),
		slog.Int("failed_sources", report.FailedSources),
		slog.Duration("duration", report.Duration),
	)
	return snapshot, report, nil
}

// fetchAll fans out over the adapters with bounded concurrency. Results are
// collected into a slice indexed by adapter position, so downstream ordering
// matches source registration order regardless of completion order.
func (p *Pipeline) fetchAll(ctx context.Context, report *garagekb.RunReport, logger *slog.Logger) [][]garagekb.RawItem {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([][]garagekb.RawItem, len(p.Adapters))
	failed := make([]bool, len(p.Adapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, adapter := range p.Adapters {
		g.Go(func() error {
			items, err := adapter.Fetch(gctx)
			if err != nil {
				logger.Warn("source fetch failed",
					slog.String("source", adapter.Profile().Name),
					slog.String("error", err.Error()),
				)
				failed[i] = true
				return nil
			}
			if max := p.Config.MaxPerSource; max > 0 && len(items) > max {
				items = items[:max]
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait() // workers swallow their own errors

	for _, f := range failed {
		if f {
			report.FailedSources++
		}
	}
	return results
}

func (p *Pipeline) buildArticle(normalizer garagekb.Normalizer, classifier *Classifier, extractor *Extractor, item garagekb.RawItem, ordinal int) (*garagekb.Article, SkipReason) {
	title := normalizer.Normalize(item.Title)
	summary := normalizer.Normalize(item.Body)

	if reason := classifier.Classify(title, summary, item.Profile); reason != SkipNone {
		return nil, reason
	}

	text := title + " " + summary
	article := &garagekb.Article{
		ID:          ComputeID(item, ordinal),
		Title:       title,
		Summary:     summary,
		Link:        item.Link,
		Source:      item.Profile.Name,
		SourceType:  item.Profile.Kind,
		ContentType: ContentTypeFor(item.Profile.Kind),
		Category:    item.Profile.Category,
		ProblemTags: extractor.Problems(text),
		ErrorCodes:  extractor.Codes(text),
		Brands:      mergeBrands(item.Brands, extractor.Brands(text)),
		Symptoms:    extractor.Symptoms(text),
		Image:       ExtractImage(item),
		Published:   item.Published,
	}
	if err := article.Validate(); err != nil {
		return nil, SkipInvalid
	}
	return article, SkipNone
}

// mergeBrands unions source-declared brands with text-extracted ones,
// lowercased, sorted, without duplicates.
func mergeBrands(declared, extracted []string) []string {
	set := make(map[string]struct{}, len(declared)+len(extracted))
	for _, b := range declared {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			set[b] = struct{}{}
		}
	}
	for _, b := range extracted {
		set[strings.ToLower(b)] = struct{}{}
	}
	return sortedKeys(set)
}

func (p *Pipeline) finish(ctx context.Context, report *garagekb.RunReport, started time.Time, logger *slog.Logger) {
	report.Duration = time.Since(started)
	if p.Runs == nil {
		return
	}
	if err := p.Runs.RecordRun(ctx, report); err != nil {
		logger.Warn("run record failed", slog.String("error", err.Error()))
	}
}
