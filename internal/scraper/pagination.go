package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
)

// Pagination is the resolved page state for one fetched page.
type Pagination struct {
	TotalPages  int
	NextPageURL string
}

var pageOfRe = regexp.MustCompile(`(\d+)\s+of\s+(\d+)`)
var pageSegmentRe = regexp.MustCompile(`page-\d+`)

// ResolvePagination determines the thread's total page count from the
// navigation markup: the explicit last-page link first, then the highest
// numbered page link, then a "X of Y" indicator, then the page-jump input's
// max attribute. A page with none of these is a single-page thread. The next
// page URL is built by templating, not by following a "next" link, so it
// stays deterministic given the total and current index.
func ResolvePagination(doc *goquery.Document, pat *pattern.SitePattern, pageURL string, currentPage int) Pagination {
	pg := Pagination{TotalPages: 1}

	selectors := pat.RoleSelectors(pattern.RolePagination)
	if len(selectors) == 0 {
		defaults := pattern.DefaultPattern()
		selectors = defaults.RoleSelectors(pattern.RolePagination)
	}

	if nav := firstMatch(doc.Selection, selectors); nav != nil {
		pg.TotalPages = totalFromNav(nav.First())
	}
	if pg.TotalPages == 1 {
		if max := doc.Find("input.js-pageJumpPage").First().AttrOr("max", ""); max != "" {
			if n, err := strconv.Atoi(max); err == nil && n > 1 {
				pg.TotalPages = n
			}
		}
	}

	if currentPage < pg.TotalPages {
		pg.NextPageURL = BuildPageURL(pageURL, currentPage+1)
	}
	return pg
}

func totalFromNav(nav *goquery.Selection) int {
	if text := strings.TrimSpace(nav.Find("a.pageNav-page--last").First().Text()); text != "" {
		if n, err := strconv.Atoi(text); err == nil {
			return n
		}
	}

	highest := 1
	nav.Find("a.pageNav-page").Each(func(_ int, a *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(a.Text())); err == nil && n > highest {
			highest = n
		}
	})
	if highest > 1 {
		return highest
	}

	indicator := nav.Find(".pageNavSimple-el--current").First().Text()
	if indicator == "" {
		indicator = nav.Text()
	}
	if m := pageOfRe.FindStringSubmatch(indicator); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			return n
		}
	}
	return 1
}

// BuildPageURL templates a page number into a thread URL, replacing an
// existing page-N segment or appending one.
func BuildPageURL(threadURL string, page int) string {
	if page <= 1 {
		return threadURL
	}
	if pageSegmentRe.MatchString(threadURL) {
		return pageSegmentRe.ReplaceAllString(threadURL, fmt.Sprintf("page-%d", page))
	}
	if strings.HasSuffix(threadURL, "/") {
		return fmt.Sprintf("%spage-%d", threadURL, page)
	}
	return fmt.Sprintf("%s/page-%d", threadURL, page)
}
