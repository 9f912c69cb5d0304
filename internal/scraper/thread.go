package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var threadIDRe = regexp.MustCompile(`/threads/[^/]+\.(\d+)/?`)

type threadMeta struct {
	ThreadID  string
	Title     string
	StartDate string
	Tags      []string
	Prefixes  []string
}

// extractThreadMeta reads the thread header: title, id from the URL, tag
// and prefix labels, and the start date. Every field degrades to empty when
// the markup lacks it.
func extractThreadMeta(doc *goquery.Document, threadURL string) threadMeta {
	meta := threadMeta{}

	meta.Title = strings.TrimSpace(doc.Find("h1.p-title-value").First().Text())

	if m := threadIDRe.FindStringSubmatch(threadURL); m != nil {
		meta.ThreadID = m[1]
	}

	doc.Find("a.tagItem").Each(func(_ int, tag *goquery.Selection) {
		if text := strings.TrimSpace(tag.Text()); text != "" {
			meta.Tags = append(meta.Tags, text)
		}
	})
	doc.Find("a.labelLink").Each(func(_ int, label *goquery.Selection) {
		if text := strings.TrimSpace(label.Text()); text != "" {
			meta.Prefixes = append(meta.Prefixes, text)
		}
	})

	if date := doc.Find("time.u-dt").First(); date.Length() > 0 {
		meta.StartDate = date.AttrOr("datetime", "")
		if meta.StartDate == "" {
			meta.StartDate = strings.TrimSpace(date.Text())
		}
	}

	return meta
}
