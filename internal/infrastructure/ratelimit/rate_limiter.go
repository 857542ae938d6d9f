package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionGeneral     = "general"
	ActionAuth        = "auth"
	ActionUpload      = "upload"
	ActionApplication = "application"
)

// Policy is a per-minute allowance with a burst.
type Policy struct {
	PerMinute int
	Burst     int
}

func (p Policy) limiter() *rate.Limiter {
	if p.PerMinute <= 0 {
		p.PerMinute = 20
	}
	if p.Burst <= 0 {
		p.Burst = p.PerMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(p.PerMinute)), p.Burst)
}

// DefaultPolicies scales the general allowance from config; the rest are
// fixed.
func DefaultPolicies(generalPerMinute int) map[string]Policy {
	return map[string]Policy{
		ActionGeneral:     {PerMinute: generalPerMinute},
		ActionAuth:        {PerMinute: 5},
		ActionUpload:      {PerMinute: 10, Burst: 3},
		ActionApplication: {PerMinute: 5, Burst: 2},
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per (key, action) pair.
type RateLimiter struct {
	policies map[string]Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(policies map[string]Policy) *RateLimiter {
	return &RateLimiter{
		policies: policies,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow consumes a token for key under action. When denied it returns how
// long until the next token.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()

	rl.mutex.Lock()
	b, ok := rl.buckets[key+":"+action]
	if !ok {
		policy, known := rl.policies[action]
		if !known {
			policy = rl.policies[ActionGeneral]
		}
		b = &bucket{limiter: policy.limiter()}
		rl.buckets[key+":"+action] = b
	}
	b.lastSeen = now
	rl.mutex.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	removed := 0
	cutoff := rl.now().Add(-maxIdle)
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			}
		}
	}()
}
