package clipboard

import (
	"context"
	"testing"
	"time"
)

func TestWait_TakenOver(t *testing.T) {
	changed := make(chan struct{}, 1)
	changed <- struct{}{}

	if !wait(context.Background(), changed, time.Minute) {
		t.Error("expected a takeover to be reported")
	}
}

func TestWait_NothingWritten(t *testing.T) {
	if !wait(context.Background(), nil, time.Minute) {
		t.Error("expected no wait without a written image")
	}
}

func TestWait_Timeout(t *testing.T) {
	start := time.Now()
	if wait(context.Background(), make(chan struct{}), 10*time.Millisecond) {
		t.Error("expected a timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("wait took %v", elapsed)
	}
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if wait(ctx, make(chan struct{}), time.Minute) {
		t.Error("expected cancellation to stop the wait")
	}
}

func TestServesSelection(t *testing.T) {
	tests := map[string]bool{
		"linux":   true,
		"freebsd": true,
		"darwin":  false,
		"windows": false,
	}
	for goos, want := range tests {
		if got := servesSelection(goos); got != want {
			t.Errorf("servesSelection(%q) = %v, want %v", goos, got, want)
		}
	}
}
