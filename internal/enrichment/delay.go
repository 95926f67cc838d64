package enrichment

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Delayer simulates the latency of a remote product lookup. An error means
// the wait was interrupted; callers ignore it.
type Delayer interface {
	Wait(ctx context.Context) error
}

// NoDelay returns immediately.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return nil
}

// FixedDelay waits the same duration for every lookup.
type FixedDelay struct {
	D time.Duration
}

func (f FixedDelay) Wait(ctx context.Context) error {
	return sleep(ctx, f.D)
}

// JitterDelay waits a base duration plus a random share of a jitter window. The random
// source is seeded so a run's delays are reproducible.
type JitterDelay struct {
	base   time.Duration
	jitter time.Duration
	mu     sync.Mutex
	rng    *rand.Rand
}

// NewJitterDelay creates a seeded jitter delayer.
func NewJitterDelay(base, jitter time.Duration, seed int64) *JitterDelay {
	return &JitterDelay{
		base:   base,
		jitter: jitter,
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// Next draws the next delay.
func (j *JitterDelay) Next() time.Duration {
	if j.jitter <= 0 {
		return j.base
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.base + time.Duration(j.rng.Int64N(int64(j.jitter)))
}

func (j *JitterDelay) Wait(ctx context.Context) error {
	return sleep(ctx, j.Next())
}

// RateLimited spaces lookups to at most perSecond per second across all workers.
type RateLimited struct {
	limiter *rate.Limiter
}

// NewRateLimited creates a limiter with a burst of one.
func NewRateLimited(perSecond float64) *RateLimited {
	return &RateLimited{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

func (r *RateLimited) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// NewDelayer picks a delayer from configuration: a positive rate wins, then
// jitter, then a fixed delay, and NoDelay when everything is zero.
func NewDelayer(delay, jitter time.Duration, ratePerSecond float64, seed int64) Delayer {
	switch {
	case ratePerSecond > 0:
		return NewRateLimited(ratePerSecond)
	case jitter > 0:
		return NewJitterDelay(delay, jitter, seed)
	case delay > 0:
		return FixedDelay{D: delay}
	default:
		return NoDelay{}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
