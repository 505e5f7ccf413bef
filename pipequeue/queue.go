package pipequeue

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/randomizedcoder/pipequeue/internal/ringbuf"
)

// Stats is a point-in-time snapshot of a Queue's internal counters, acquired
// under the same lock as push/pop. It never mutates state.
type Stats struct {
	ElemCount    int
	Capacity     int
	MinCap       int
	MaxCap       int
	ProducerRefs int
	ConsumerRefs int
}

// Queue is the root handle returned by New: it counts simultaneously as one
// Producer and one Consumer (see NewProducer, NewConsumer, Drop).
//
// All exported methods except ElemSize and MaxCap acquire mu; none of them
// waits on a condition variable.
type Queue struct {
	mu         sync.Mutex
	justPushed *sync.Cond // broadcast after a push transaction completes
	justPopped *sync.Cond // broadcast after a pop completes

	elemSize int
	minCap   int
	maxCap   int // math.MaxInt encodes "unbounded"

	storage *ringbuf.RingBuffer // nil once the last Consumer has dropped

	producerRefs int
	consumerRefs int

	dropped atomic.Bool // guards the root handle's own Drop against double-drop
}

// New creates a Queue of elemSize-byte elements. limit bounds the number of
// buffered elements, rounded up to the next power of two (limit 5 allows 8);
// 0 means unbounded. The returned Queue counts as one
// Producer and one Consumer — mint additional handles with NewProducer and
// NewConsumer, and release this root handle with Drop once you no longer
// need it directly.
func New(elemSize, limit int) *Queue {
	if elemSize <= 0 {
		panic("pipequeue: elemSize must be > 0")
	}
	if limit < 0 {
		panic("pipequeue: limit must be >= 0")
	}

	minCap := ringbuf.DefaultMinCap
	maxCap := math.MaxInt
	if limit != 0 {
		maxCap = ringbuf.NextPow2(limit)
		minCap = min(minCap, maxCap)
	}

	q := &Queue{
		elemSize:     elemSize,
		minCap:       minCap,
		maxCap:       maxCap,
		storage:      ringbuf.New(elemSize, minCap),
		producerRefs: 1,
		consumerRefs: 1,
	}
	q.justPushed = sync.NewCond(&q.mu)
	q.justPopped = sync.NewCond(&q.mu)
	return q
}

// ElemSize returns the fixed per-element byte size. It is immutable after
// construction and safe to read without the lock.
func (q *Queue) ElemSize() int { return q.elemSize }

// MaxCap returns the upper bound on buffered elements (math.MaxInt for an
// unbounded Queue). It is immutable after construction and safe to read
// without the lock.
func (q *Queue) MaxCap() int { return q.maxCap }

// Stats returns a snapshot of the Queue's current counters.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.statsLocked()
}

func (q *Queue) statsLocked() Stats {
	s := Stats{
		MinCap:       q.minCap,
		MaxCap:       q.maxCap,
		ProducerRefs: q.producerRefs,
		ConsumerRefs: q.consumerRefs,
	}
	if q.storage != nil {
		s.ElemCount = q.storage.Len()
		s.Capacity = q.storage.Cap()
	}
	return s
}

// Reserve raises the Queue's minimum capacity to the next power of two at
// or above min(n, MaxCap) and eagerly resizes up to it, so the shrink floor
// set by Reserve never breaks the capacity-is-always-a-power-of-two
// invariant. Passing 0 resets the minimum capacity to the built-in floor
// (ringbuf.DefaultMinCap). Reserve has no effect if n is no greater than
// the current element count — the buffer already holds more.
func (q *Queue) Reserve(n int) {
	if n == 0 {
		n = ringbuf.DefaultMinCap
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.storage == nil {
		return
	}
	if n <= q.storage.Len() {
		return
	}

	if n > q.maxCap {
		n = q.maxCap
	}
	target := ringbuf.NextPow2(n)
	if target > q.maxCap {
		target = q.maxCap
	}
	q.minCap = target

	if target > q.storage.Cap() {
		q.storage.Resize(target)
	}
}

// Drop releases the root handle, decrementing both the producer and
// consumer reference counts by one, exactly as if one Producer and one
// Consumer minted at construction time were each dropped simultaneously.
// It panics if called more than once on the same Queue.
func (q *Queue) Drop() {
	if !q.dropped.CompareAndSwap(false, true) {
		panic("pipequeue: Queue root handle dropped more than once")
	}
	q.dropProducerRef()
	q.dropConsumerRef()
}

// push implements the blocking push protocol described on Producer.Push.
func (q *Queue) push(elems []byte) {
	if len(elems)%q.elemSize != 0 {
		panic("pipequeue: push length is not a multiple of ElemSize")
	}
	remaining := len(elems) / q.elemSize
	if remaining == 0 {
		return
	}
	offset := 0

	for remaining > 0 {
		q.mu.Lock()
		for q.storage != nil && q.storage.Len() == q.maxCap && q.consumerRefs > 0 {
			q.justPopped.Wait()
		}

		if q.consumerRefs == 0 {
			q.mu.Unlock()
			return
		}

		k := min(remaining, q.maxCap-q.storage.Len())
		if target, grow := ringbuf.ShouldGrow(q.storage.Len(), k, q.storage.Cap(), q.maxCap); grow {
			q.storage.Resize(target)
		}
		start := offset * q.elemSize
		q.storage.CopyIn(elems[start:start+k*q.elemSize], k)
		q.mu.Unlock()

		q.justPushed.Broadcast()

		offset += k
		remaining -= k
	}
}

// pop implements the blocking pop protocol described on Consumer.Pop.
func (q *Queue) pop(dst []byte) int {
	if dst == nil {
		panic("pipequeue: pop into a nil destination")
	}
	if len(dst)%q.elemSize != 0 {
		panic("pipequeue: pop length is not a multiple of ElemSize")
	}
	count := len(dst) / q.elemSize
	if count > q.maxCap {
		count = q.maxCap
	}

	q.mu.Lock()
	for q.storage.Len() < count && q.producerRefs > 0 {
		q.justPushed.Wait()
	}

	elemCount := q.storage.Len()
	r := min(count, elemCount)
	if r > 0 {
		q.storage.CopyOut(dst[:r*q.elemSize], r)

		// Apply the halving step repeatedly, so a pop that drains a large
		// burst brings capacity all the way back down in one resize.
		newCap := q.storage.Cap()
		for {
			target, shrink := ringbuf.ShouldShrink(q.storage.Len(), newCap, q.minCap)
			if !shrink {
				break
			}
			newCap = target
		}
		if newCap != q.storage.Cap() {
			q.storage.Resize(newCap)
		}
	}
	q.mu.Unlock()

	q.justPopped.Broadcast()
	return r
}

func (q *Queue) newProducerRef() {
	q.mu.Lock()
	q.producerRefs++
	q.mu.Unlock()
}

func (q *Queue) newConsumerRef() {
	q.mu.Lock()
	q.consumerRefs++
	q.mu.Unlock()
}

func (q *Queue) dropProducerRef() {
	q.mu.Lock()
	if q.producerRefs == 0 {
		q.mu.Unlock()
		panic("pipequeue: producer reference count underflow")
	}
	q.producerRefs--
	wake := q.producerRefs == 0
	q.mu.Unlock()

	if wake {
		// No more producers: wake consumers blocked waiting for more data so
		// they can observe end-of-stream.
		q.justPushed.Broadcast()
	}
}

func (q *Queue) dropConsumerRef() {
	q.mu.Lock()
	if q.consumerRefs == 0 {
		q.mu.Unlock()
		panic("pipequeue: consumer reference count underflow")
	}
	q.consumerRefs--
	if q.consumerRefs == 0 {
		// Last consumer: the storage has no more readers, release it now
		// even though producers may still be live. Their pushes become
		// silent no-ops (see push).
		q.storage = nil
	}
	wake := q.consumerRefs == 0
	q.mu.Unlock()

	if wake {
		q.justPopped.Broadcast()
	}
}
