package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_Ceiling(t *testing.T) {
	b := Backoff{Base: 100 * time.Millisecond, Max: time.Second}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{10, time.Second},
		{1000, time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Ceiling(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestBackoff_DelayRange(t *testing.T) {
	b := Backoff{Base: 100 * time.Millisecond, Max: time.Second}

	for attempt := 0; attempt < 6; attempt++ {
		c := b.Ceiling(attempt)
		for i := 0; i < 50; i++ {
			d := b.Delay(attempt)
			assert.GreaterOrEqual(t, d, c/2)
			assert.LessOrEqual(t, d, c)
		}
	}
}

func TestBackoff_Degenerate(t *testing.T) {
	assert.Zero(t, Backoff{}.Delay(3))
	assert.Zero(t, Backoff{Max: time.Second}.Delay(0))

	// Max меньше Base: растём не дальше Base
	b := Backoff{Base: time.Second, Max: time.Millisecond}
	assert.Equal(t, time.Second, b.Ceiling(5))
	assert.LessOrEqual(t, b.Delay(5), time.Second)
}
