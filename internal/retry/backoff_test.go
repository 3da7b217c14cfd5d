package retry

import (
	"testing"
	"time"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

func TestExponentialBackoff_DefaultValues(t *testing.T) {
	strategy := NewDefaultBackoff()

	if strategy.InitialDelay() != shadowforensic.DefaultRetryInitialDelay {
		t.Errorf("InitialDelay = %v, want %v", strategy.InitialDelay(), shadowforensic.DefaultRetryInitialDelay)
	}
	if strategy.MaxDelay() != shadowforensic.DefaultRetryMaxDelay {
		t.Errorf("MaxDelay = %v, want %v", strategy.MaxDelay(), shadowforensic.DefaultRetryMaxDelay)
	}
	if strategy.Multiplier() != 2.0 {
		t.Errorf("Multiplier = %v, want 2.0", strategy.Multiplier())
	}
	if strategy.Jitter() != 0.1 {
		t.Errorf("Jitter = %v, want 0.1", strategy.Jitter())
	}
	if strategy.MaxAttempts() != shadowforensic.DefaultRetryMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", strategy.MaxAttempts(), shadowforensic.DefaultRetryMaxAttempts)
	}
}

func TestExponentialBackoff_NextDelay_WithoutJitter(t *testing.T) {
	strategy := NewExponentialBackoff(5,
		WithInitialDelay(50*time.Millisecond),
		WithMultiplier(2.0),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 50 * time.Millisecond},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := strategy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialBackoff_NextDelay_MaxDelayCap(t *testing.T) {
	strategy := NewExponentialBackoff(100,
		WithInitialDelay(50*time.Millisecond),
		WithMaxDelay(2*time.Second),
		WithJitter(0),
	)

	for attempt := 0; attempt <= 100; attempt++ {
		if delay := strategy.NextDelay(attempt); delay > 2*time.Second {
			t.Fatalf("NextDelay(%d) = %v exceeds the cap", attempt, delay)
		}
	}
	if delay := strategy.NextDelay(30); delay != 2*time.Second {
		t.Errorf("NextDelay(30) = %v, want 2s", delay)
	}
}

func TestExponentialBackoff_NextDelay_WithJitter(t *testing.T) {
	tests := []struct {
		random float64
		want   time.Duration
	}{
		{0.0, 90 * time.Millisecond},
		{0.5, 100 * time.Millisecond},
		{1.0, 110 * time.Millisecond},
	}

	for _, tt := range tests {
		random := tt.random
		strategy := NewExponentialBackoff(3,
			WithInitialDelay(100*time.Millisecond),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return random }),
		)
		if got := strategy.NextDelay(0); got != tt.want {
			t.Errorf("NextDelay(0) with random=%v = %v, want %v", tt.random, got, tt.want)
		}
	}
}

func TestExponentialBackoff_NextDelay_DifferentMultipliers(t *testing.T) {
	tests := []struct {
		multiplier float64
		attempt    int
		want       time.Duration
	}{
		{1.5, 1, 150 * time.Millisecond},
		{1.5, 2, 225 * time.Millisecond},
		{3.0, 1, 300 * time.Millisecond},
		{3.0, 2, 900 * time.Millisecond},
	}

	for _, tt := range tests {
		strategy := NewExponentialBackoff(5,
			WithInitialDelay(100*time.Millisecond),
			WithMultiplier(tt.multiplier),
			WithMaxDelay(time.Minute),
			WithJitter(0),
		)
		if got := strategy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("multiplier %v NextDelay(%d) = %v, want %v", tt.multiplier, tt.attempt, got, tt.want)
		}
	}
}
