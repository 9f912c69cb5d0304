package fetch

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Client fetches pages with browser-like headers, a politeness delay
// between requests, and Referer continuity across a thread's pages. Forums
// behind aggressive bot protection reject the default Go user agent.
type Client struct {
	httpClient *http.Client
	delay      time.Duration

	mu      sync.Mutex
	lastURL string
}

func NewClient(delay time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		delay:      delay,
	}
}

func (c *Client) Fetch(url string) (string, error) {
	c.mu.Lock()
	referer := c.lastURL
	c.mu.Unlock()

	if c.delay > 0 {
		time.Sleep(c.delay)
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	c.mu.Lock()
	c.lastURL = url
	c.mu.Unlock()

	return string(body), nil
}
