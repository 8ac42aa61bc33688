// Package scraper defines core types shared across subsystems and implements
// the bounded-concurrency fetch scheduler.
package scraper

import "time"

// PageRecord is the result of a successful post fetch: the page title and the
// deduplicated, lexicographically sorted outbound link targets found in it.
type PageRecord struct {
	URL   string
	Title string
	Links []string
}

// Outcome is the per-URL result of a scheduled fetch. Present is false for
// every "no record produced" case: network error, timeout, non-2xx status,
// parse failure, and also a successful fetch that yielded zero links. The
// conflation of the last case with real failures is deliberate and matches
// the documented behavior; callers cannot tell them apart.
type Outcome struct {
	URL     string
	Record  PageRecord
	Present bool
}

// Absent builds the unified no-record outcome for url.
func Absent(url string) Outcome {
	return Outcome{URL: url}
}

// Recorded builds a successful outcome carrying rec.
func Recorded(rec PageRecord) Outcome {
	return Outcome{URL: rec.URL, Record: rec, Present: true}
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Records filters outcomes down to the successful page records.
func Records(outcomes []Outcome) []PageRecord {
	records := make([]PageRecord, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Present {
			records = append(records, o.Record)
		}
	}
	return records
}
