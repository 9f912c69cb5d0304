package scraper

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
)

// Fetcher retrieves a page's HTML. The transport (rate limiting, retries,
// cookies) lives behind this interface; a fetch failure simply means no page
// was available.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// Scraper drives a full thread scrape: detect or load the site pattern,
// extract page by page, then aggregate social links.
type Scraper struct {
	baseURL  *url.URL
	fetcher  Fetcher
	store    pattern.Store
	detector *pattern.Detector

	// guards pat; one Scraper serves every watch job for its site
	mu  sync.Mutex
	pat *pattern.SitePattern
}

func New(baseURL string, fetcher Fetcher, store pattern.Store) (*Scraper, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &Scraper{
		baseURL:  base,
		fetcher:  fetcher,
		store:    store,
		detector: pattern.NewDetector(),
	}, nil
}

// SiteKey identifies this forum in the pattern store.
func (s *Scraper) SiteKey() string {
	return s.baseURL.Hostname()
}

// ScrapeThread scrapes a thread from its first page through min(totalPages,
// maxPages). maxPages <= 0 means all pages. Pages that fail to fetch or come
// back empty are logged and skipped; two consecutive empty pages end the
// loop early.
func (s *Scraper) ScrapeThread(threadURL string, maxPages int) (*models.Thread, error) {
	startTime := time.Now()
	log.Printf("Scraping thread %s", threadURL)

	doc, err := s.document(threadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread page: %w", err)
	}

	pat := s.sitePattern(doc, threadURL)
	meta := extractThreadMeta(doc, threadURL)
	pg := ResolvePagination(doc, pat, threadURL, 1)

	thread := &models.Thread{
		ThreadID:    meta.ThreadID,
		Title:       meta.Title,
		URL:         threadURL,
		StartDate:   meta.StartDate,
		Tags:        meta.Tags,
		Prefixes:    meta.Prefixes,
		TotalPages:  pg.TotalPages,
		CurrentPage: 1,
	}

	extractor := NewExtractor(s.baseURL, pat)
	thread.Posts = extractor.ExtractPosts(doc)
	log.Printf("Page 1: found %d posts", len(thread.Posts))

	pages := pg.TotalPages
	if maxPages > 0 && maxPages < pages {
		pages = maxPages
	}

	emptyStreak := 0
	for page := 2; page <= pages; page++ {
		pageURL := BuildPageURL(threadURL, page)
		doc, err := s.document(pageURL)
		if err != nil {
			log.Printf("Failed to fetch page %d: %v", page, err)
			break
		}

		posts := extractor.ExtractPosts(doc)
		if len(posts) == 0 {
			log.Printf("Page %d: no posts found", page)
			emptyStreak++
			if emptyStreak >= 2 {
				break
			}
			continue
		}
		emptyStreak = 0

		thread.Posts = append(thread.Posts, posts...)
		thread.CurrentPage = page
		log.Printf("Page %d: found %d posts (total %d)", page, len(posts), len(thread.Posts))
	}

	thread.SocialLinks = AggregateSocialLinks(thread.Posts)

	log.Printf("Scraped %d posts from %q in %.2f seconds",
		len(thread.Posts), thread.Title, time.Since(startTime).Seconds())
	return thread, nil
}

// ThreadURLs lists thread links on a forum index page, at most maxThreads
// when positive.
func (s *Scraper) ThreadURLs(forumURL string, maxThreads int) ([]string, error) {
	doc, err := s.document(forumURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forum page: %w", err)
	}

	var urls []string
	doc.Find("div.structItem-title a[href*='/threads/']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if href == "" {
			return true
		}
		urls = append(urls, s.resolve(href))
		return maxThreads <= 0 || len(urls) < maxThreads
	})

	log.Printf("Found %d threads on %s", len(urls), forumURL)
	return urls, nil
}

// DetectPattern forces a fresh detection pass against the given thread page
// and persists the result, replacing any stored pattern for this site.
func (s *Scraper) DetectPattern(threadURL string) (*pattern.SitePattern, error) {
	doc, err := s.document(threadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sample page: %w", err)
	}
	detected := s.detector.Detect(doc, threadURL)
	if s.store != nil {
		if err := s.store.Save(s.SiteKey(), detected); err != nil {
			return nil, fmt.Errorf("failed to save pattern: %w", err)
		}
	}
	s.mu.Lock()
	s.pat = &detected
	s.mu.Unlock()
	return &detected, nil
}

// Pattern returns the pattern currently in use, which may be nil before the
// first scrape.
func (s *Scraper) Pattern() *pattern.SitePattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pat
}

// sitePattern loads the stored pattern for this site, detecting and saving
// one from the supplied page on a store miss. The detected pattern is saved
// even when degenerate, so detection runs once per site rather than on every
// scrape.
func (s *Scraper) sitePattern(doc *goquery.Document, sampleURL string) *pattern.SitePattern {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pat != nil {
		return s.pat
	}

	if s.store != nil {
		stored, ok, err := s.store.Load(s.SiteKey())
		if err != nil {
			log.Printf("Warning: could not load pattern for %s: %v", s.SiteKey(), err)
		} else if ok {
			s.pat = stored
			return s.pat
		}
	}

	detected := s.detector.Detect(doc, sampleURL)
	if detected.IsEmpty() {
		log.Printf("Warning: no selectors detected for %s, using defaults", s.SiteKey())
	}
	if s.store != nil {
		if err := s.store.Save(s.SiteKey(), detected); err != nil {
			log.Printf("Warning: could not save pattern for %s: %v", s.SiteKey(), err)
		}
	}
	s.pat = &detected
	return s.pat
}

func (s *Scraper) document(pageURL string) (*goquery.Document, error) {
	html, err := s.fetcher.Fetch(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

func (s *Scraper) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return s.baseURL.ResolveReference(ref).String()
}
