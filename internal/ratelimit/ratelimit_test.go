package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AdmitsUpToLimit(t *testing.T) {
	l := NewLimiter(5, time.Hour)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d should be admitted", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"), "sixth request should be rejected")
	assert.False(t, l.Allow("1.2.3.4"), "seventh request should be rejected")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(5, time.Hour)

	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "a different client gets its own window")
}

func TestLimiter_WindowReset(t *testing.T) {
	l := NewLimiter(5, time.Hour)

	current := time.Now()
	l.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}
	assert.False(t, l.Allow("1.2.3.4"))

	// Just past the window boundary the counter starts over.
	current = current.Add(time.Hour + time.Second)
	assert.True(t, l.Allow("1.2.3.4"))

	for i := 0; i < 4; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
	assert.False(t, l.Allow("1.2.3.4"))
}
