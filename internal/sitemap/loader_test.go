package sitemap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kitsunelab/blogmap/internal/scraper"
)

type stubFetcher struct {
	body []byte
	err  error
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (scraper.FetchResponse, error) {
	if s.err != nil {
		return scraper.FetchResponse{}, s.err
	}
	return scraper.FetchResponse{URL: url, StatusCode: 200, Body: s.body}, nil
}

const sampleSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://blog.example/post-1</loc><lastmod>2024-01-01</lastmod></url>
  <url><loc>https://blog.example/post-2</loc></url>
  <url><loc>https://blog.example/post-1</loc></url>
</urlset>`

func TestLoadReturnsLocsInDocumentOrder(t *testing.T) {
	t.Parallel()

	loader := NewLoader(&stubFetcher{body: []byte(sampleSitemap)}, nil)
	urls, err := loader.Load(context.Background(), "https://blog.example/sitemap.xml")
	require.NoError(t, err)
	// Duplicates are preserved; the sitemap is trusted as-is.
	require.Equal(t, []string{
		"https://blog.example/post-1",
		"https://blog.example/post-2",
		"https://blog.example/post-1",
	}, urls)
}

func TestLoadFetchFailure(t *testing.T) {
	t.Parallel()

	loader := NewLoader(&stubFetcher{err: errors.New("status 500")}, nil)
	urls, err := loader.Load(context.Background(), "https://blog.example/sitemap.xml")
	require.Error(t, err)
	require.Empty(t, urls)
}

func TestLoadMalformedXML(t *testing.T) {
	t.Parallel()

	loader := NewLoader(&stubFetcher{body: []byte("<urlset><url><loc>broken")}, nil)
	urls, err := loader.Load(context.Background(), "https://blog.example/sitemap.xml")
	require.Error(t, err)
	require.Empty(t, urls)
}

func TestLoadEmptySitemap(t *testing.T) {
	t.Parallel()

	body := `<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset>`
	loader := NewLoader(&stubFetcher{body: []byte(body)}, nil)
	urls, err := loader.Load(context.Background(), "https://blog.example/sitemap.xml")
	require.NoError(t, err)
	require.Empty(t, urls)
}
