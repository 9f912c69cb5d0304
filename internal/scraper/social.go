package scraper

import (
	"net/url"
	"strings"

	"github.com/mindjek007/XenForo-Scraper/internal/models"
)

// Social platforms matched by link host. Subdomains match their parent
// entry, so m.facebook.com counts as facebook. Order decides ties for hosts
// that could match more than one entry.
var socialPlatforms = []struct {
	domain   string
	platform string
}{
	{"tiktok.com", "tiktok"},
	{"twitter.com", "twitter"},
	{"x.com", "x"},
	{"instagram.com", "instagram"},
	{"facebook.com", "facebook"},
	{"onlyfans.com", "onlyfans"},
	{"fansly.com", "fansly"},
	{"patreon.com", "patreon"},
	{"youtube.com", "youtube"},
	{"youtu.be", "youtube"},
	{"snapchat.com", "snapchat"},
	{"reddit.com", "reddit"},
	{"twitch.tv", "twitch"},
	{"discord.gg", "discord"},
	{"discord.com", "discord"},
	{"telegram.org", "telegram"},
	{"t.me", "telegram"},
	{"linkedin.com", "linkedin"},
	{"pinterest.com", "pinterest"},
	{"tumblr.com", "tumblr"},
	{"vimeo.com", "vimeo"},
	{"threads.net", "threads"},
	{"bluesky.social", "bluesky"},
}

// AggregateSocialLinks walks every post's links in post order and returns
// the social-platform references, deduplicated by normalized URL with the
// first occurrence kept. The link_type field carries the platform name.
// Links to hosts outside the platform table are excluded.
func AggregateSocialLinks(posts []models.Post) []models.Link {
	var social []models.Link
	seen := map[string]bool{}

	for _, post := range posts {
		for _, link := range post.Links {
			platform, ok := matchPlatform(link.URL)
			if !ok {
				continue
			}
			key := normalizeSocialURL(link.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			social = append(social, models.Link{
				URL:      link.URL,
				Text:     link.Text,
				LinkType: platform,
			})
		}
	}
	return social
}

func matchPlatform(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", false
	}
	for _, entry := range socialPlatforms {
		if host == entry.domain || strings.HasSuffix(host, "."+entry.domain) {
			return entry.platform, true
		}
	}
	return "", false
}

// normalizeSocialURL reduces a URL to scheme + lowercased host + path with
// the query dropped and any trailing slash ignored, so casing and tracking
// parameters do not defeat deduplication.
func normalizeSocialURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(rawURL)
	}
	path := strings.TrimSuffix(parsed.EscapedPath(), "/")
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Hostname()) + path
}
