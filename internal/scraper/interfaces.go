package scraper

import (
	"context"
	"time"
)

// Fetcher fetches a single URL and returns the body plus metadata. A non-2xx
// status must be reported as an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// Extractor parses fetched HTML into a title and a set of distinct link
// targets. Implementations must be pure functions of the input bytes.
type Extractor interface {
	Page(body []byte) (title string, links []string, err error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(body []byte) (string, []string, error)

// Page calls f.
func (f ExtractorFunc) Page(body []byte) (string, []string, error) {
	return f(body)
}

// Reporter receives per-fetch completion notifications from the scheduler.
// statusCode is 0 when the fetch failed before an HTTP response was read.
type Reporter interface {
	FetchDone(statusCode int, dur time.Duration, present bool)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
