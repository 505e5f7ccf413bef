package progress_test

import (
	"testing"
	"time"

	"github.com/randomizedcoder/pipequeue/internal/progress"
)

func TestStdTicker(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := progress.NewStd(interval)
	defer ticker.Stop()

	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after creation")
	}

	time.Sleep(interval + 20*time.Millisecond)

	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval elapsed")
	}
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after tick")
	}
}

func TestStdTicker_Reset(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := progress.NewStd(interval)
	defer ticker.Stop()

	time.Sleep(interval + 20*time.Millisecond)
	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval")
	}

	ticker.Reset()
	if ticker.Tick() {
		t.Error("expected Tick() = false after Reset()")
	}
}

func TestAtomicTicker(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := progress.NewAtomic(interval)
	defer ticker.Stop()

	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after creation")
	}
	time.Sleep(interval + 20*time.Millisecond)
	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval elapsed")
	}
}

func TestBatchTicker_OnlyChecksClockEveryN(t *testing.T) {
	interval := 20 * time.Millisecond
	ticker := progress.NewBatch(interval, 5)
	defer ticker.Stop()

	time.Sleep(interval + 10*time.Millisecond)

	// Calls 1-4 don't check the clock at all, so they must return false
	// even though the interval has already elapsed.
	for i := 0; i < 4; i++ {
		if ticker.Tick() {
			t.Fatalf("call %d: expected false before the 5th call checks the clock", i+1)
		}
	}
	// The 5th call checks the clock and should observe the elapsed interval.
	if !ticker.Tick() {
		t.Fatal("expected the 5th call to observe the elapsed interval")
	}
}

func TestBatchTicker_Reset(t *testing.T) {
	ticker := progress.NewBatch(time.Hour, 1)
	defer ticker.Stop()
	ticker.Tick()
	ticker.Reset()
	if ticker.Tick() {
		t.Fatal("expected false immediately after Reset()")
	}
}

func TestImplementsTickerInterface(t *testing.T) {
	var _ progress.Ticker = progress.NewStd(time.Second)
	var _ progress.Ticker = progress.NewBatch(time.Second, 1)
	var _ progress.Ticker = progress.NewAtomic(time.Second)
}
