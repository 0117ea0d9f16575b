package relay

import (
	"testing"
	"time"
)

func TestReconnectDelayCapsAtMax(t *testing.T) {
	for attempt := 1; attempt <= reconnectMaxAttempts; attempt++ {
		d := reconnectDelay(attempt)

		if d > reconnectMaxDelay {
			t.Fatalf("reconnectDelay(%d) = %v, exceeds cap %v", attempt, d, reconnectMaxDelay)
		}

		if d <= 0 {
			t.Fatalf("reconnectDelay(%d) = %v, want positive", attempt, d)
		}
	}
}

func TestReconnectDelayGrowsWithAttempt(t *testing.T) {
	// compare the average of several samples since jitter makes any single
	// pair of samples an unreliable comparison.
	const samples = 20

	var earlyTotal, lateTotal time.Duration
	for i := 0; i < samples; i++ {
		earlyTotal += reconnectDelay(1)
		lateTotal += reconnectDelay(5)
	}

	if lateTotal <= earlyTotal {
		t.Fatalf("expected later attempts to back off further on average: early=%v late=%v", earlyTotal, lateTotal)
	}
}
