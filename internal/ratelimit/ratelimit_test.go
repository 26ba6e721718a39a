package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinQuota(t *testing.T) {
	l := New(Quota{Requests: 5, Window: time.Hour})

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d should pass", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"), "request over quota should be rejected")
}

func TestClientsAreIndependent(t *testing.T) {
	l := New(Quota{Requests: 2, Window: time.Hour})

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// a different address still has its full quota
	assert.True(t, l.Allow("10.0.0.2"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestQuotaRefillsOverTime(t *testing.T) {
	l := New(Quota{Requests: 2, Window: 100 * time.Millisecond})

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	time.Sleep(120 * time.Millisecond)
	assert.True(t, l.Allow("10.0.0.1"), "tokens should refill after the window passes")
}

func TestIdleClientsArePruned(t *testing.T) {
	l := New(Quota{Requests: 1, Window: 10 * time.Millisecond})

	assert.True(t, l.Allow("10.0.0.1"))
	time.Sleep(30 * time.Millisecond)

	// touching another key triggers pruning of the stale entry
	assert.True(t, l.Allow("10.0.0.2"))

	l.mu.Lock()
	_, stillThere := l.clients["10.0.0.1"]
	l.mu.Unlock()
	assert.False(t, stillThere)
}
