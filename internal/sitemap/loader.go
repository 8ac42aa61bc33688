// Package sitemap loads the seed URL list from a blog's XML sitemap.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"

	"go.uber.org/zap"

	"github.com/kitsunelab/blogmap/internal/scraper"
)

// Namespace is the standard sitemap XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []urlEntry `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 url"`
}

type urlEntry struct {
	Loc string `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 loc"`
}

// Loader fetches and parses one sitemap document.
type Loader struct {
	fetcher scraper.Fetcher
	logger  *zap.Logger
}

// NewLoader constructs a Loader.
func NewLoader(fetcher scraper.Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load returns every <loc> value nested under the namespace's <url> elements,
// in document order. No deduplication and no URL validation is performed. On
// fetch or parse failure it returns an empty slice and the error; callers
// treat that as "nothing to do" rather than a fatal condition.
func (l *Loader) Load(ctx context.Context, sitemapURL string) ([]string, error) {
	l.logger.Info("fetching sitemap", zap.String("url", sitemapURL))

	resp, err := l.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap: %w", err)
	}

	var set urlSet
	if err := xml.Unmarshal(resp.Body, &set); err != nil {
		return nil, fmt.Errorf("parse sitemap xml: %w", err)
	}

	urls := make([]string, 0, len(set.URLs))
	for _, entry := range set.URLs {
		urls = append(urls, entry.Loc)
	}
	l.logger.Info("sitemap loaded", zap.Int("urls", len(urls)))
	return urls, nil
}
