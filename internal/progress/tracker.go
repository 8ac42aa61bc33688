// Package progress tracks per-run fetch completions and exports them as
// Prometheus metrics plus a periodic log heartbeat.
package progress

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// StatusClass is a coarse HTTP response grouping. The "error" class covers
// fetches that failed before an HTTP response was read.
type StatusClass string

// Supported status classes tracked for fetch completions.
const (
	Status2xx   StatusClass = "2xx"
	Status3xx   StatusClass = "3xx"
	Status4xx   StatusClass = "4xx"
	Status5xx   StatusClass = "5xx"
	StatusError StatusClass = "error"
	StatusOther StatusClass = "other"
)

// ClassifyStatus groups HTTP status codes for fetch metrics.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code == 0:
		return StatusError
	case code >= 200 && code < 300:
		return Status2xx
	case code >= 300 && code < 400:
		return Status3xx
	case code >= 400 && code < 500:
		return Status4xx
	case code >= 500 && code < 600:
		return Status5xx
	default:
		return StatusOther
	}
}

const defaultHeartbeat = 5 * time.Second

// Tracker implements scraper.Reporter. It owns all collectors for the run
// and logs a heartbeat while fetches are in flight. It is safe for
// concurrent use by the scheduler's workers.
type Tracker struct {
	logger *zap.Logger
	runID  string

	total     int64
	completed atomic.Int64
	succeeded atomic.Int64

	fetches       *prometheus.CounterVec
	recordsTotal  prometheus.Counter
	absentTotal   prometheus.Counter
	fetchDuration *prometheus.HistogramVec

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopping atomic.Bool
}

// NewTracker registers the run's collectors against reg.
func NewTracker(reg prometheus.Registerer, logger *zap.Logger, runID string) (*Tracker, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		logger: logger,
		runID:  runID,
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogmap_fetches_total",
			Help: "Fetch completions partitioned by status class.",
		}, []string{"status_class"}),
		recordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogmap_records_total",
			Help: "Pages that produced a link record.",
		}),
		absentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogmap_absent_outcomes_total",
			Help: "Pages that produced no record (failure or zero links).",
		}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogmap_fetch_duration_seconds",
			Help:    "Fetch duration partitioned by status class.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"status_class"}),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, collector := range []prometheus.Collector{
		t.fetches,
		t.recordsTotal,
		t.absentTotal,
		t.fetchDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Start records the expected fetch count and launches the heartbeat
// goroutine. interval <= 0 selects the default.
func (t *Tracker) Start(total int, interval time.Duration) {
	t.total = int64(total)
	if interval <= 0 {
		interval = defaultHeartbeat
	}
	go t.heartbeat(interval)
}

// FetchDone records one fetch completion. statusCode 0 marks a transport
// failure; present marks whether a page record was produced.
func (t *Tracker) FetchDone(statusCode int, dur time.Duration, present bool) {
	class := string(ClassifyStatus(statusCode))
	t.fetches.WithLabelValues(class).Inc()
	if dur > 0 {
		t.fetchDuration.WithLabelValues(class).Observe(dur.Seconds())
	}
	if present {
		t.recordsTotal.Inc()
		t.succeeded.Add(1)
	} else {
		t.absentTotal.Inc()
	}
	t.completed.Add(1)
}

// Completed returns the number of fetches finished so far.
func (t *Tracker) Completed() int64 {
	return t.completed.Load()
}

// Succeeded returns the number of fetches that produced a record.
func (t *Tracker) Succeeded() int64 {
	return t.succeeded.Load()
}

// Stop halts the heartbeat and waits for it to exit. Safe to call once.
func (t *Tracker) Stop() {
	if t.stopping.Swap(true) {
		return
	}
	close(t.stopCh)
	<-t.doneCh
}

func (t *Tracker) heartbeat(interval time.Duration) {
	defer close(t.doneCh)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.logger.Info("scrape progress",
				zap.String("run_id", t.runID),
				zap.Int64("completed", t.completed.Load()),
				zap.Int64("total", t.total),
				zap.Int64("records", t.succeeded.Load()),
			)
		}
	}
}
