package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstImageURL returns the src of the first <img> element found in the raw
// HTML, or the empty string if there is none. It never fails; unparseable
// input yields the empty string.
func FirstImageURL(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	src, ok := doc.Find("img[src]").First().Attr("src")
	if !ok {
		return ""
	}
	return strings.TrimSpace(src)
}
