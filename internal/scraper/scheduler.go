package scraper

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PlaceholderTitle substitutes for pages whose markup carries no <title>.
const PlaceholderTitle = "No Title Found"

// Scheduler fans out one unit of work per input URL while admitting at most
// Concurrency units into the in-flight fetch phase at any instant. A unit
// acquires a permit before any network I/O, sleeps its politeness jitter
// while holding the permit (so idle-slot time counts toward the delay), and
// releases the permit on every exit path. Failures are isolated per URL:
// they become absent outcomes and never abort sibling units.
type Scheduler struct {
	cfg       Config
	fetcher   Fetcher
	extractor Extractor
	reporter  Reporter
	clock     Clock
	pauser    pauseController
	jitter    jitterSource
	logger    *zap.Logger
}

// NewScheduler constructs a Scheduler. reporter may be nil.
func NewScheduler(cfg Config, fetcher Fetcher, extractor Extractor, reporter Reporter, clock Clock, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		reporter:  reporter,
		clock:     clock,
		pauser:    &timerPauseController{},
		jitter:    newUniformJitter(cfg.DelayMin, cfg.DelayMax),
		logger:    logger,
	}
}

// Run fetches every URL and returns exactly one outcome per input. The
// collection order is unspecified; callers filter with Records. Run waits for
// all units of work to finish and has no pipeline-level timeout of its own;
// only the per-request timeout inside the Fetcher bounds each unit.
func (s *Scheduler) Run(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))
	permits := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, pageURL := range urls {
		wg.Add(1)
		go func(slot int, pageURL string) {
			defer wg.Done()
			permits <- struct{}{}
			// Unconditional release keeps the pool from starving no matter
			// how the unit exits.
			defer func() { <-permits }()
			outcomes[slot] = s.scrapeOne(ctx, pageURL)
		}(i, pageURL)
	}

	wg.Wait()
	return outcomes
}

// scrapeOne runs with a permit held: jittered sleep, single GET, extraction.
func (s *Scheduler) scrapeOne(ctx context.Context, pageURL string) Outcome {
	s.pauser.Pause(ctx, s.jitter.Delay())

	start := s.clock.Now()
	resp, err := s.fetcher.Fetch(ctx, pageURL)
	dur := s.clock.Now().Sub(start)
	if err != nil {
		s.logger.Debug("page fetch failed", zap.String("url", pageURL), zap.Error(err))
		s.report(0, dur, false)
		return Absent(pageURL)
	}

	title, links, err := s.extractor.Page(resp.Body)
	if err != nil {
		s.logger.Debug("page extraction failed", zap.String("url", pageURL), zap.Error(err))
		s.report(resp.StatusCode, dur, false)
		return Absent(pageURL)
	}
	if len(links) == 0 {
		// Indistinguishable from a failed fetch downstream.
		s.logger.Debug("page yielded no links", zap.String("url", pageURL))
		s.report(resp.StatusCode, dur, false)
		return Absent(pageURL)
	}

	if title == "" {
		title = PlaceholderTitle
	}
	sorted := append([]string(nil), links...)
	sort.Strings(sorted)

	s.report(resp.StatusCode, dur, true)
	return Recorded(PageRecord{URL: pageURL, Title: title, Links: sorted})
}

func (s *Scheduler) report(statusCode int, dur time.Duration, present bool) {
	if s.reporter == nil {
		return
	}
	s.reporter.FetchDone(statusCode, dur, present)
}
