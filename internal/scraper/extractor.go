package scraper

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
)

// Extractor walks post containers on a thread page and emits normalized
// Post records. The site pattern's selectors are tried first, the catalog
// defaults cover any role the pattern omits, independently per field.
type Extractor struct {
	base     *url.URL
	pat      *pattern.SitePattern
	defaults pattern.SitePattern
}

func NewExtractor(base *url.URL, pat *pattern.SitePattern) *Extractor {
	return &Extractor{
		base:     base,
		pat:      pat,
		defaults: pattern.DefaultPattern(),
	}
}

// ExtractPosts extracts every identifiable post on the page, in document
// order. A malformed post is skipped, never fatal. A page with no post
// containers at all yields an empty slice; the caller decides whether that
// ends pagination.
func (e *Extractor) ExtractPosts(doc *goquery.Document) []models.Post {
	containers := firstMatch(doc.Selection, e.selectorsFor(pattern.RolePostContainer))
	if containers == nil {
		return nil
	}

	var posts []models.Post
	containers.Each(func(i int, s *goquery.Selection) {
		post, err := e.extractPost(s)
		if err != nil {
			log.Printf("Skipping post #%d: %v", i+1, err)
			return
		}
		posts = append(posts, post)
	})
	return posts
}

func (e *Extractor) extractPost(container *goquery.Selection) (models.Post, error) {
	id, err := e.extractPostID(container)
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		PostID:    id,
		Author:    e.extractUser(container),
		Reactions: e.extractReactions(container),
		Date:      e.extractDate(container),
	}

	content := e.contentSelection(container)
	post.Content = plainText(content)
	post.Attachments = e.extractAttachments(container, content)
	post.MediaEmbeds = extractMediaEmbeds(content)
	post.Links = e.extractLinks(content)

	return post, nil
}

// extractPostID reads the post identifier from the pattern's attribute,
// falling back to the id attribute with its "post-" prefix stripped. A
// container with no resolvable id cannot be identified at all.
func (e *Extractor) extractPostID(container *goquery.Selection) (string, error) {
	attr := e.pat.PostIDAttr()
	if attr == "" {
		attr = e.defaults.PostIDAttr()
	}

	id := strings.TrimSpace(container.AttrOr(attr, ""))
	if id == "" && attr != "id" {
		id = strings.TrimSpace(container.AttrOr("id", ""))
	}
	id = strings.TrimPrefix(id, "post-")
	if id == "" {
		return "", fmt.Errorf("no post id in %q attribute", attr)
	}
	return id, nil
}

func (e *Extractor) extractDate(container *goquery.Selection) string {
	elem := firstMatch(container, e.selectorsFor(pattern.RoleDate))
	if elem == nil {
		return ""
	}
	first := elem.First()
	if dt, ok := first.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return strings.TrimSpace(first.Text())
}

var numberRe = regexp.MustCompile(`\d+`)

// extractReactions takes the first numeric token in the matched reaction
// element's text; posts with no reaction markup count as 0.
func (e *Extractor) extractReactions(container *goquery.Selection) int {
	elem := firstMatch(container, e.selectorsFor(pattern.RoleReactions))
	if elem == nil {
		return 0
	}
	text := strings.ReplaceAll(elem.First().Text(), ",", "")
	match := numberRe.FindString(text)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// selectorsFor returns the pattern's list for a role, or the catalog
// defaults when the pattern omits it.
func (e *Extractor) selectorsFor(role string) []string {
	if sels := e.pat.RoleSelectors(role); len(sels) > 0 {
		return sels
	}
	return e.defaults.RoleSelectors(role)
}

func (e *Extractor) contentClasses() []string {
	if classes := e.pat.ContentClasses(); len(classes) > 0 {
		return classes
	}
	return e.defaults.ContentClasses()
}

// firstMatch tries selectors left to right and returns the matches of the
// first one that yields any, or nil. This is the extraction-side policy:
// once a selector hits, later candidates are not consulted.
func firstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := root.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// resolveURL makes href absolute against the forum base. Unparsable hrefs
// come back unchanged.
func (e *Extractor) resolveURL(href string) string {
	if e.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return e.base.ResolveReference(ref).String()
}
