package goquery

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/garagekb/garagekb"
)

// Default selectors match question-listing pages in the 2CarPros style.
const (
	DefaultItemSelector    = "div.question-item"
	DefaultTitleSelector   = "a.question-title"
	DefaultSnippetSelector = "p.question-snippet"
)

// Ensure ForumScraper implements garagekb.SourceAdapter at compile time.
var _ garagekb.SourceAdapter = (*ForumScraper)(nil)

// ForumScraper reads question listings from forum sites without feeds by
// scraping their HTML. Listing pages carry no per-item timestamps, so items
// are stamped with the run time.
type ForumScraper struct {
	fetcher garagekb.Fetcher
	limiter garagekb.DomainLimiter
	profile garagekb.SourceProfile
	url     string
	limit   int
	now     func() time.Time

	// ItemSelector locates one question block; TitleSelector and
	// SnippetSelector are resolved within it.
	ItemSelector    string
	TitleSelector   string
	SnippetSelector string
}

// NewForumScraper creates a scraper for one listing URL, emitting at most
// limit items per fetch. The limiter may be nil.
func NewForumScraper(fetcher garagekb.Fetcher, limiter garagekb.DomainLimiter, profile garagekb.SourceProfile, listingURL string, limit int) *ForumScraper {
	return &ForumScraper{
		fetcher:         fetcher,
		limiter:         limiter,
		profile:         profile,
		url:             listingURL,
		limit:           limit,
		now:             time.Now,
		ItemSelector:    DefaultItemSelector,
		TitleSelector:   DefaultTitleSelector,
		SnippetSelector: DefaultSnippetSelector,
	}
}

// Profile returns the source profile attached to scraped items.
func (s *ForumScraper) Profile() garagekb.SourceProfile {
	return s.profile
}

// Fetch retrieves the listing page and extracts question items.
// Items without a title are skipped; relative links are resolved against the
// listing URL.
func (s *ForumScraper) Fetch(ctx context.Context) ([]garagekb.RawItem, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, domainOf(s.url)); err != nil {
			return nil, err
		}
	}

	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.url)
	if err != nil {
		return nil, err
	}

	published := s.now().UTC().Format(time.RFC3339)

	var items []garagekb.RawItem
	doc.Find(s.ItemSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if s.limit > 0 && len(items) >= s.limit {
			return false
		}

		titleEl := sel.Find(s.TitleSelector).First()
		title := strings.TrimSpace(titleEl.Text())
		if title == "" {
			return true
		}

		link := ""
		if href, ok := titleEl.Attr("href"); ok {
			link = resolveLink(base, href)
		}

		snippet := strings.TrimSpace(sel.Find(s.SnippetSelector).First().Text())

		items = append(items, garagekb.RawItem{
			Profile:   s.profile,
			Title:     title,
			Body:      snippet,
			Link:      link,
			Published: published,
		})
		return true
	})

	return items, nil
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}

