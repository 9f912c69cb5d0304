package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
)

// Known embed providers, matched against the iframe source host. Order
// matters: the first matching entry classifies the embed. Hosts not listed
// fall back to the generic "iframe" type with the raw markup retained.
var embedProviders = []struct {
	host      string
	mediaType string
	idRe      *regexp.Regexp
}{
	{"saint2.cr", "saint_video", regexp.MustCompile(`/embed/([^/?]+)`)},
	{"saint.to", "saint_video", regexp.MustCompile(`/embed/([^/?]+)`)},
	{"youtube.com", "youtube", regexp.MustCompile(`(?:embed/|v=)([^&?]+)`)},
	{"youtu.be", "youtube", regexp.MustCompile(`(?:embed/|v=)([^&?]+)`)},
	{"redgifs.com", "redgifs", regexp.MustCompile(`/watch/([^/?]+)`)},
	{"imgur.com", "imgur", nil},
}

var loadMediaRe = regexp.MustCompile(`loadMedia\([^,]+,\s*["']([^"']+)["']`)

// extractMediaEmbeds collects iframe embeds and lazy-load placeholders from
// the post body.
func extractMediaEmbeds(content *goquery.Selection) []models.MediaEmbed {
	if content == nil || content.Length() == 0 {
		return nil
	}

	var embeds []models.MediaEmbed

	content.Find("iframe").Each(func(_ int, iframe *goquery.Selection) {
		src := iframe.AttrOr("src", "")
		if src == "" {
			return
		}
		embed := classifyEmbed(src)
		if embed.MediaType == "iframe" {
			if raw, err := goquery.OuterHtml(iframe); err == nil {
				embed.RawHTML = raw
			}
		}
		embeds = append(embeds, embed)
	})

	// themes lazy-load some players; the URL hides in an onclick handler
	content.Find("div.generic2wide-iframe-div, div.iframe-wrapper-redgifs").Each(func(_ int, div *goquery.Selection) {
		parent := div.Parent()
		if parent.Length() == 0 {
			return
		}
		onclick := parent.AttrOr("onclick", "")
		m := loadMediaRe.FindStringSubmatch(onclick)
		if m == nil {
			return
		}
		embedURL := m[1]
		mediaType := "video"
		if strings.Contains(embedURL, "redgifs") {
			mediaType = "redgifs"
		}
		embeds = append(embeds, models.MediaEmbed{
			MediaType: mediaType,
			EmbedURL:  embedURL,
		})
	})

	return embeds
}

func classifyEmbed(src string) models.MediaEmbed {
	embed := models.MediaEmbed{MediaType: "iframe", EmbedURL: src}
	for _, provider := range embedProviders {
		if !strings.Contains(src, provider.host) {
			continue
		}
		embed.MediaType = provider.mediaType
		if provider.idRe != nil {
			if m := provider.idRe.FindStringSubmatch(src); m != nil {
				id := m[1]
				embed.MediaID = &id
			}
		}
		break
	}
	return embed
}
