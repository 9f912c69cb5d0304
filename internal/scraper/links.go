package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
)

// Link classifications.
const (
	LinkExternal  = "external"
	LinkInternal  = "internal"
	LinkImageLink = "image_link"
)

// extractLinks collects every hyperlink in the post body, normalized to an
// absolute URL and classified against the thread's forum host. A known image
// extension wins over the internal/external split.
func (e *Extractor) extractLinks(content *goquery.Selection) []models.Link {
	if content == nil || content.Length() == 0 {
		return nil
	}

	var links []models.Link
	content.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		full := e.resolveURL(href)
		text := strings.TrimSpace(a.Text())
		if img := a.Find("img").First(); img.Length() > 0 && text == "" {
			text = img.AttrOr("alt", "")
			if text == "" {
				text = img.AttrOr("title", "")
			}
		}
		if text == "" {
			text = href
		}

		links = append(links, models.Link{
			URL:      full,
			Text:     text,
			LinkType: e.classifyLink(full),
		})
	})
	return links
}

func (e *Extractor) classifyLink(fullURL string) string {
	if isImageURL(fullURL) {
		return LinkImageLink
	}
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return LinkExternal
	}
	if e.base != nil && sameHost(e.base.Hostname(), parsed.Hostname()) {
		return LinkInternal
	}
	return LinkExternal
}

// sameHost compares hosts case-insensitively, treating www as transparent.
func sameHost(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	return a == b
}
