package progress

import "time"

// BatchTicker checks the wall clock only every N calls to Tick(), amortizing
// the cost of a time check across rapid loop iterations — useful in a
// pipeline worker that reports progress without wanting a clock read on
// every popped batch.
type BatchTicker struct {
	interval time.Duration
	every    int
	count    int
	lastTick time.Time
}

// NewBatch creates a BatchTicker that checks the clock every N calls.
func NewBatch(interval time.Duration, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{interval: interval, every: every, lastTick: time.Now()}
}

// Tick returns true if the interval has elapsed. The time is only checked
// every `every` calls; other calls return false immediately.
func (b *BatchTicker) Tick() bool {
	b.count++
	if b.count%b.every != 0 {
		return false
	}
	now := time.Now()
	if now.Sub(b.lastTick) >= b.interval {
		b.lastTick = now
		return true
	}
	return false
}

// Reset restarts the batch counter and interval from now.
func (b *BatchTicker) Reset() {
	b.count = 0
	b.lastTick = time.Now()
}

// Stop is a no-op; BatchTicker holds no resources.
func (b *BatchTicker) Stop() {}
