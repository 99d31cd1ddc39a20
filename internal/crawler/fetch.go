package crawler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Fetcher retrieves raw page text, either over HTTP or from a saved file on
// disk. A single GET per URL, no retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     *PageCache
}

func NewFetcher(timeout time.Duration, userAgent string, cache *PageCache) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		cache:     cache,
	}
}

// Fetch returns the page text for url. Entries without an http(s) scheme are
// treated as paths to saved pages and read from disk.
func (f *Fetcher) Fetch(url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		b, err := os.ReadFile(url)
		if err != nil {
			return "", fmt.Errorf("read saved page %s: %w", url, err)
		}
		return string(b), nil
	}

	if f.cache != nil {
		if html, ok := f.cache.Get(url); ok {
			log.WithField("url", url).Debug("page served from cache")
			return html, nil
		}
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	if f.cache != nil {
		f.cache.Put(url, string(b))
	}

	return string(b), nil
}
