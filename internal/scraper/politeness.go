package scraper

import (
	"context"
	"math/rand/v2"
	"time"
)

// pauseController abstracts how a worker waits out its politeness delay.
type pauseController interface {
	Pause(ctx context.Context, delay time.Duration)
}

type timerPauseController struct{}

func (p *timerPauseController) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// jitterSource draws one politeness delay per request.
type jitterSource interface {
	Delay() time.Duration
}

// uniformJitter draws uniformly from [min, max].
type uniformJitter struct {
	min time.Duration
	max time.Duration
}

func newUniformJitter(min, max time.Duration) *uniformJitter {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &uniformJitter{min: min, max: max}
}

func (j *uniformJitter) Delay() time.Duration {
	span := j.max - j.min
	if span <= 0 {
		return j.min
	}
	return j.min + time.Duration(rand.Int64N(int64(span)+1))
}
