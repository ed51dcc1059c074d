package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/mohi-devhub/genie/internal/config"
)

// Result reports the outcome of a single rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter bounds the rate of requests per identity using a fixed window.
type Limiter interface {
	Check(ctx context.Context, identity string) (Result, error)
}

type entry struct {
	count     int
	resetTime time.Time
}

// FixedWindow is an in-process fixed-window limiter. Windows are independent
// per identity. State is not durable and not shared across processes; a
// multi-instance deployment should use RedisWindow instead.
type FixedWindow struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration
	max     int

	now  func() time.Time
	done chan struct{}
}

const cleanupInterval = 5 * time.Minute

// NewFixedWindow builds a limiter allowing cfg.Max requests per cfg.Window
// and starts a background sweep of expired windows. Call Stop when done.
func NewFixedWindow(cfg config.WindowConfig) *FixedWindow {
	fw := &FixedWindow{
		entries: make(map[string]*entry),
		window:  cfg.Window,
		max:     cfg.Max,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go fw.cleanupLoop()
	return fw
}

// Check starts a new window on first sight (or after expiry) with count 1,
// increments within an active window, and denies once the budget is spent.
func (fw *FixedWindow) Check(_ context.Context, identity string) (Result, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	e, ok := fw.entries[identity]

	if !ok || now.After(e.resetTime) {
		resetTime := now.Add(fw.window)
		fw.entries[identity] = &entry{count: 1, resetTime: resetTime}
		return Result{Allowed: true, Remaining: fw.max - 1, ResetTime: resetTime}, nil
	}

	if e.count >= fw.max {
		return Result{Allowed: false, Remaining: 0, ResetTime: e.resetTime}, nil
	}

	e.count++
	return Result{Allowed: true, Remaining: fw.max - e.count, ResetTime: e.resetTime}, nil
}

// Reset clears the window for an identity.
func (fw *FixedWindow) Reset(identity string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	delete(fw.entries, identity)
}

// Stop terminates the cleanup loop.
func (fw *FixedWindow) Stop() {
	close(fw.done)
}

func (fw *FixedWindow) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fw.cleanup()
		case <-fw.done:
			return
		}
	}
}

// cleanup drops expired windows to bound memory.
func (fw *FixedWindow) cleanup() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	now := fw.now()
	for identity, e := range fw.entries {
		if now.After(e.resetTime) {
			delete(fw.entries, identity)
		}
	}
}

// Set holds the per-concern limiters, constructed once at startup and
// injected into handlers.
type Set struct {
	API    Limiter
	Auth   Limiter
	Submit Limiter
	Vote   Limiter

	stops []func()
}

// NewSet builds in-process limiters for each configured budget.
func NewSet(cfg *config.Config) *Set {
	api := NewFixedWindow(cfg.RateLimit.API)
	auth := NewFixedWindow(cfg.RateLimit.Auth)
	submit := NewFixedWindow(cfg.RateLimit.Submit)
	vote := NewFixedWindow(cfg.RateLimit.Vote)
	return &Set{
		API:    api,
		Auth:   auth,
		Submit: submit,
		Vote:   vote,
		stops:  []func(){api.Stop, auth.Stop, submit.Stop, vote.Stop},
	}
}

// Stop terminates any background work owned by the set.
func (s *Set) Stop() {
	for _, stop := range s.stops {
		stop()
	}
}
