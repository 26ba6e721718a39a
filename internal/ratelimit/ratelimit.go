// Package ratelimit throttles clients per IP address. Each route group
// carries its own quota so that expensive operations (account creation,
// upstream searches) are capped independently of ordinary resource access.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Quota caps a client at Requests per Window. The limiter smooths the
// quota into a token bucket whose burst equals the full quota, so a client
// may spend its allowance at once but cannot sustain a higher rate.
type Quota struct {
	Requests int
	Window   time.Duration
}

// Default quotas per route group.
var (
	RegisterQuota = Quota{Requests: 5, Window: time.Hour}
	LoginQuota    = Quota{Requests: 10, Window: time.Minute}
	PokedexQuota  = Quota{Requests: 100, Window: time.Minute}
	SearchQuota   = Quota{Requests: 30, Window: time.Minute}
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter enforces one Quota across many clients, keyed by caller identity
// (typically the remote IP). Idle entries are pruned so the map does not
// grow with every address ever seen.
type Limiter struct {
	quota Quota

	mu      sync.Mutex
	clients map[string]*client
}

// New builds a limiter for the given quota.
func New(quota Quota) *Limiter {
	return &Limiter{
		quota:   quota,
		clients: make(map[string]*client),
	}
}

// Allow reports whether the caller identified by key may proceed, consuming
// one token when it may.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit(), l.quota.Requests)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()

	l.pruneLocked()
	return c.limiter.Allow()
}

func (l *Limiter) limit() rate.Limit {
	return rate.Limit(float64(l.quota.Requests) / l.quota.Window.Seconds())
}

// pruneLocked drops clients idle for more than two full windows. Called
// with l.mu held; cheap enough to run inline on every Allow.
func (l *Limiter) pruneLocked() {
	cutoff := time.Now().Add(-2 * l.quota.Window)
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}
