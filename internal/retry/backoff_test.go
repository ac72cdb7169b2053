package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3, WithJitter(0))

	assert.Equal(t, 3, b.MaxAttempts())
	assert.Equal(t, DefaultInitialDelay, b.NextDelay(0))
	assert.Equal(t, 2*DefaultInitialDelay, b.NextDelay(1))
	assert.Equal(t, DefaultMaxDelay, b.NextDelay(30))
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	tests := []struct {
		multiplier float64
		attempt    int
		want       time.Duration
	}{
		{multiplier: 2, attempt: 0, want: 100 * time.Millisecond},
		{multiplier: 2, attempt: 1, want: 200 * time.Millisecond},
		{multiplier: 2, attempt: 3, want: 800 * time.Millisecond},
		{multiplier: 1.5, attempt: 2, want: 225 * time.Millisecond},
		{multiplier: 3, attempt: 2, want: 900 * time.Millisecond},
		{multiplier: 2, attempt: 10, want: time.Second}, // capped
	}

	for _, tt := range tests {
		b := NewExponentialBackoff(5,
			WithInitialDelay(100*time.Millisecond),
			WithMaxDelay(time.Second),
			WithMultiplier(tt.multiplier),
			WithJitter(0),
		)
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "multiplier=%v attempt=%d", tt.multiplier, tt.attempt)
	}
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	tests := []struct {
		random float64
		want   time.Duration
	}{
		{random: 0.0, want: 90 * time.Millisecond},
		{random: 0.5, want: 100 * time.Millisecond},
		{random: 1.0, want: 110 * time.Millisecond},
	}

	for _, tt := range tests {
		b := NewExponentialBackoff(1,
			WithInitialDelay(100*time.Millisecond),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return tt.random }),
		)
		assert.Equal(t, tt.want, b.NextDelay(0))
	}
}

func TestExponentialBackoff_NeverExceedsCapWithJitter(t *testing.T) {
	b := NewExponentialBackoff(100, WithMaxDelay(time.Second), WithJitter(0.2))

	for attempt := 0; attempt < 100; attempt++ {
		assert.LessOrEqual(t, b.NextDelay(attempt), 1200*time.Millisecond)
	}
}
