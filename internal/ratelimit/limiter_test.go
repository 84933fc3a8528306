package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(limit, window, WithClock(func() time.Time { return now }))
	return l, &now
}

func TestAdmit_RemainingDecreasesWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(5, 30*time.Second)

	for i := 1; i <= 5; i++ {
		dec := l.Admit("1.2.3.4")
		assert.True(t, dec.Allowed, "request %d", i)
		assert.Equal(t, 5-i, dec.Remaining, "request %d", i)
	}
}

func TestAdmit_RejectsPastLimit(t *testing.T) {
	l, now := newTestLimiter(3, 30*time.Second)
	start := *now

	for range 3 {
		require.True(t, l.Admit("1.2.3.4").Allowed)
	}

	for i := range 4 {
		dec := l.Admit("1.2.3.4")
		assert.False(t, dec.Allowed, "rejected request %d", i)
		assert.Equal(t, 0, dec.Remaining)
		assert.Equal(t, start.Add(30*time.Second), dec.ResetAt)
	}
}

func TestAdmit_ResetAtAnchoredToWindowStart(t *testing.T) {
	l, now := newTestLimiter(10, 30*time.Second)
	start := *now

	dec := l.Admit("1.2.3.4")
	require.Equal(t, start.Add(30*time.Second), dec.ResetAt)

	*now = start.Add(10 * time.Second)
	dec = l.Admit("1.2.3.4")
	assert.Equal(t, start.Add(30*time.Second), dec.ResetAt, "reset is anchored to the window start, not the request time")
}

func TestAdmit_WindowResetAfterExpiry(t *testing.T) {
	l, now := newTestLimiter(3, 30*time.Second)

	for range 3 {
		require.True(t, l.Admit("1.2.3.4").Allowed)
	}
	require.False(t, l.Admit("1.2.3.4").Allowed)

	*now = now.Add(30 * time.Second)
	dec := l.Admit("1.2.3.4")
	assert.True(t, dec.Allowed)
	assert.Equal(t, 2, dec.Remaining)
	assert.Equal(t, now.Add(30*time.Second), dec.ResetAt)
}

func TestAdmit_IdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 30*time.Second)

	assert.True(t, l.Admit("1.2.3.4").Allowed)
	assert.False(t, l.Admit("1.2.3.4").Allowed)
	assert.True(t, l.Admit("5.6.7.8").Allowed)
}

func TestSweep_DropsOnlyExpiredWindows(t *testing.T) {
	l, now := newTestLimiter(10, 30*time.Second)

	l.Admit("old")
	*now = now.Add(20 * time.Second)
	l.Admit("fresh")
	require.Equal(t, 2, l.Size())

	*now = now.Add(15 * time.Second) // old is 35s, fresh is 15s
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Size())

	// a swept identity starts a new window on its next request
	dec := l.Admit("old")
	assert.True(t, dec.Allowed)
	assert.Equal(t, 9, dec.Remaining)
}

func TestAdmit_ConcurrentRequestsNeverExceedLimit(t *testing.T) {
	l := New(50, 30*time.Second)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit("1.2.3.4").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestNew_AppliesDefaults(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, DefaultLimit, l.Limit())
	assert.Equal(t, DefaultWindow, l.Window())
}
