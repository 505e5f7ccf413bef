package shutdown

import "sync/atomic"

// AtomicSignaler uses an atomic.Bool for shutdown signaling — the cheapest
// option when Done() is polled in a tight feeder loop.
type AtomicSignaler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicSignaler.
func NewAtomic() *AtomicSignaler { return &AtomicSignaler{} }

// Done returns true if Cancel has been called.
func (a *AtomicSignaler) Done() bool { return a.done.Load() }

// Cancel signals shutdown. Safe to call multiple times.
func (a *AtomicSignaler) Cancel() { a.done.Store(true) }

// Reset clears the shutdown flag, for reuse without reallocation.
// Not safe to call concurrently with Done() or Cancel().
func (a *AtomicSignaler) Reset() { a.done.Store(false) }
