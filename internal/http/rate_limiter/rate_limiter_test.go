package rate_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(rps float64, burst int, ttl time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(rps, burst, ttl)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllow_Burst(t *testing.T) {
	l, now := newTestLimiter(1, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "separate bucket per client")

	*now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token refilled")
}

func TestCleanup_EvictsIdleVisitors(t *testing.T) {
	l, now := newTestLimiter(1, 1, 5*time.Minute)

	l.Allow("10.0.0.1")
	*now = now.Add(3 * time.Minute)
	l.Allow("10.0.0.2")
	*now = now.Add(3 * time.Minute)

	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, l.Len())
}

func TestRun_StopsOnCancel(t *testing.T) {
	l := New(1, 1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
