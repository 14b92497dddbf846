// Package etree parses RSS and Atom feed XML into flat, transport-agnostic
// entries for source adapters.
package etree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Entry is one feed item. All fields are raw source values; timestamp
// normalization and identity derivation happen in the adapters.
type Entry struct {
	ID        string
	Title     string
	Summary   string
	Link      string
	Published string

	// MediaURL is a thumbnail/media/enclosure URL, when the feed carries one.
	MediaURL string

	// VideoID is set for YouTube feed entries (yt:videoId).
	VideoID string
}

// Parse reads feed XML and returns its entries. RSS 2.0 and Atom documents
// are supported; anything else is an error.
func Parse(feedXML string) ([]Entry, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(feedXML); err != nil {
		return nil, fmt.Errorf("parsing feed XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty feed document")
	}

	switch root.Tag {
	case "rss":
		channel := root.SelectElement("channel")
		if channel == nil {
			return nil, fmt.Errorf("rss feed without channel element")
		}
		return parseRSS(channel), nil
	case "feed":
		return parseAtom(root), nil
	}
	return nil, fmt.Errorf("unsupported feed root element %q", root.Tag)
}

func parseRSS(channel *etree.Element) []Entry {
	var entries []Entry
	for _, item := range channel.SelectElements("item") {
		e := Entry{
			ID:        childText(item, "guid"),
			Title:     childText(item, "title"),
			Summary:   childText(item, "description"),
			Link:      childText(item, "link"),
			Published: childText(item, "pubDate"),
			MediaURL:  rssMediaURL(item),
		}
		entries = append(entries, e)
	}
	return entries
}

// rssMediaURL picks a media URL in priority order: media:content,
// media:thumbnail, enclosure.
func rssMediaURL(item *etree.Element) string {
	for _, tag := range []string{"media:content", "media:thumbnail", "enclosure"} {
		if el := item.SelectElement(tag); el != nil {
			if u := strings.TrimSpace(el.SelectAttrValue("url", "")); u != "" {
				return u
			}
		}
	}
	return ""
}

func parseAtom(feed *etree.Element) []Entry {
	var entries []Entry
	for _, item := range feed.SelectElements("entry") {
		e := Entry{
			ID:        childText(item, "id"),
			Title:     childText(item, "title"),
			Summary:   childText(item, "summary"),
			Link:      atomLink(item),
			Published: childText(item, "published"),
			VideoID:   childText(item, "yt:videoId"),
		}
		if e.Published == "" {
			e.Published = childText(item, "updated")
		}
		if group := item.SelectElement("media:group"); group != nil {
			if e.Summary == "" {
				e.Summary = childText(group, "media:description")
			}
			if thumb := group.SelectElement("media:thumbnail"); thumb != nil {
				e.MediaURL = strings.TrimSpace(thumb.SelectAttrValue("url", ""))
			}
		}
		if e.Summary == "" {
			e.Summary = childText(item, "content")
		}
		entries = append(entries, e)
	}
	return entries
}

// atomLink prefers the alternate link, falling back to the first link with
// an href.
func atomLink(item *etree.Element) string {
	var first string
	for _, link := range item.SelectElements("link") {
		href := strings.TrimSpace(link.SelectAttrValue("href", ""))
		if href == "" {
			continue
		}
		if link.SelectAttrValue("rel", "alternate") == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}

func childText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
