// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

package auth

import (
	"sync"
	"time"
)

// Rate limiting defaults.
const (
	// DefaultLockoutDuration is the time an account is locked out after too many failures.
	DefaultLockoutDuration = 15 * time.Minute

	// DefaultLockoutThreshold is the number of failures that triggers a lockout.
	DefaultLockoutThreshold = 7

	// maxDelay caps the progressive delay between failed attempts.
	maxDelay = 32 * time.Second

	// sweepThreshold is the number of tracked keys above which stale entries are pruned.
	sweepThreshold = 10_000
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	// Delay is the time left before another attempt is allowed.
	Delay time.Duration

	// IsLockedOut indicates the account is temporarily locked.
	IsLockedOut bool

	// LockoutRemaining is the time until the lockout expires.
	LockoutRemaining time.Duration
}

// Allowed reports whether an attempt may proceed now.
func (r RateLimitResult) Allowed() bool {
	return !r.IsLockedOut && r.Delay <= 0
}

// RetryAfter returns how long the caller should wait before retrying.
func (r RateLimitResult) RetryAfter() time.Duration {
	if r.IsLockedOut {
		return r.LockoutRemaining
	}
	return r.Delay
}

// ProgressiveDelay returns the wait imposed after the given number of
// consecutive failures: 2^(failures-1) seconds, capped at 32s.
func ProgressiveDelay(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	if failures > 6 {
		return maxDelay
	}
	return min(time.Duration(1<<(failures-1))*time.Second, maxDelay)
}

type attemptState struct {
	failures    int
	inflight    int
	last        time.Time
	lockedUntil time.Time
}

// Throttle tracks consecutive failed sign-ins per key in memory. After
// threshold failures the key is locked out for the lockout duration; below
// that, each failure imposes a progressive delay. A success resets the key.
// The failure count outlives a lockout, so the first failure after it ends
// locks the key again. A key is forgotten once it has been quiet for the
// lockout duration.
//
// Callers reserve an attempt with Acquire before asking the backend and settle
// it with RecordFailure, Reset or Release. Reserved attempts count toward the
// delay and the threshold, so parallel guesses cannot all pass the check.
//
// Throttle is safe for concurrent use.
type Throttle struct {
	mu        sync.Mutex
	attempts  map[string]*attemptState
	threshold int
	lockout   time.Duration
	now       func() time.Time
}

// NewThrottle creates a Throttle. Non-positive arguments take the defaults.
func NewThrottle(threshold int, lockout time.Duration) *Throttle {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	if lockout <= 0 {
		lockout = DefaultLockoutDuration
	}
	return &Throttle{
		attempts:  make(map[string]*attemptState),
		threshold: threshold,
		lockout:   lockout,
		now:       time.Now,
	}
}

// Check evaluates the current state of key without recording anything.
func (t *Throttle) Check(key string) RateLimitResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	st, ok := t.lookup(key, now)
	if !ok {
		return RateLimitResult{}
	}
	return t.evaluate(st, now)
}

// Acquire reserves an attempt for key if one is allowed now. When it returns
// false the attempt must not proceed and the result says how long to wait.
// A successful Acquire must be settled with RecordFailure, Reset or Release.
func (t *Throttle) Acquire(key string) (RateLimitResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	st, ok := t.lookup(key, now)
	if ok {
		if result := t.evaluate(st, now); !result.Allowed() {
			return result, false
		}
	} else {
		st = t.track(key, now)
	}
	st.inflight++
	st.last = now
	return RateLimitResult{}, true
}

// RecordFailure counts a failed attempt for key and returns the new state.
// It settles one reservation made by Acquire, if any.
func (t *Throttle) RecordFailure(key string) RateLimitResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	st, ok := t.attempts[key]
	if !ok || t.expired(st, now) {
		st = t.track(key, now)
	}

	if st.inflight > 0 {
		st.inflight--
	}
	st.failures++
	st.last = now
	if st.failures >= t.threshold {
		st.lockedUntil = now.Add(t.lockout)
	}
	return t.evaluate(st, now)
}

// Release settles a reservation whose outcome says nothing about the
// credentials, such as a backend outage.
func (t *Throttle) Release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.attempts[key]
	if !ok {
		return
	}
	if st.inflight > 0 {
		st.inflight--
	}
	if st.failures == 0 && st.inflight == 0 {
		delete(t.attempts, key)
	}
}

// Reset forgets key after a successful attempt.
func (t *Throttle) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
}

// Len returns the number of tracked keys.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.attempts)
}

// lookup returns the live state of key, dropping it if it has expired.
func (t *Throttle) lookup(key string, now time.Time) (*attemptState, bool) {
	st, ok := t.attempts[key]
	if !ok {
		return nil, false
	}
	if t.expired(st, now) {
		delete(t.attempts, key)
		return nil, false
	}
	return st, true
}

func (t *Throttle) track(key string, now time.Time) *attemptState {
	if len(t.attempts) >= sweepThreshold {
		t.sweep(now)
	}
	st := &attemptState{}
	t.attempts[key] = st
	return st
}

// evaluate counts reserved attempts as failures. While reservations are
// pending and would reach the threshold, further attempts wait.
func (t *Throttle) evaluate(st *attemptState, now time.Time) RateLimitResult {
	if now.Before(st.lockedUntil) {
		return RateLimitResult{IsLockedOut: true, LockoutRemaining: st.lockedUntil.Sub(now)}
	}
	pending := st.failures + st.inflight
	wait := st.last.Add(ProgressiveDelay(pending)).Sub(now)
	if st.inflight > 0 && pending >= t.threshold {
		wait = max(wait, ProgressiveDelay(pending))
	}
	var result RateLimitResult
	if wait > 0 {
		result.Delay = wait
	}
	return result
}

// expired reports whether st no longer affects future attempts: nothing in
// flight, no active lockout, and no activity for the lockout duration.
func (t *Throttle) expired(st *attemptState, now time.Time) bool {
	if st.inflight > 0 || now.Before(st.lockedUntil) {
		return false
	}
	quietSince := st.last
	if st.lockedUntil.After(quietSince) {
		quietSince = st.lockedUntil
	}
	return now.Sub(quietSince) >= t.lockout
}

func (t *Throttle) sweep(now time.Time) {
	for key, st := range t.attempts {
		if t.expired(st, now) {
			delete(t.attempts, key)
		}
	}
}
