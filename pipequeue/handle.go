package pipequeue

import "sync/atomic"

// Producer is a counted handle granting the right to push elements onto a
// Queue. Producer and Consumer handles on the same Queue are reference
// counted independently (see Queue).
type Producer struct {
	q       *Queue
	dropped atomic.Bool
}

// Consumer is a counted handle granting the right to pop elements from a
// Queue.
type Consumer struct {
	q       *Queue
	dropped atomic.Bool
}

// NewProducer mints a new Producer handle on q, incrementing its producer
// reference count.
func (q *Queue) NewProducer() *Producer {
	q.newProducerRef()
	return &Producer{q: q}
}

// NewConsumer mints a new Consumer handle on q, incrementing its consumer
// reference count.
func (q *Queue) NewConsumer() *Consumer {
	q.newConsumerRef()
	return &Consumer{q: q}
}

// NewProducer mints a sibling Producer handle sharing p's underlying Queue.
func (p *Producer) NewProducer() *Producer { return p.q.NewProducer() }

// NewConsumer mints a sibling Consumer handle sharing p's underlying Queue.
func (p *Producer) NewConsumer() *Consumer { return p.q.NewConsumer() }

// NewProducer mints a sibling Producer handle sharing c's underlying Queue.
func (c *Consumer) NewProducer() *Producer { return c.q.NewProducer() }

// NewConsumer mints a sibling Consumer handle sharing c's underlying Queue.
func (c *Consumer) NewConsumer() *Consumer { return c.q.NewConsumer() }

// Reserve raises the underlying Queue's minimum capacity; see Queue.Reserve.
func (p *Producer) Reserve(n int) { p.q.Reserve(n) }

// Reserve raises the underlying Queue's minimum capacity; see Queue.Reserve.
func (c *Consumer) Reserve(n int) { c.q.Reserve(n) }

// Stats returns a snapshot of the underlying Queue's counters.
func (p *Producer) Stats() Stats { return p.q.Stats() }

// Stats returns a snapshot of the underlying Queue's counters.
func (c *Consumer) Stats() Stats { return c.q.Stats() }

// ElemSize returns the underlying Queue's fixed element size.
func (p *Producer) ElemSize() int { return p.q.elemSize }

// ElemSize returns the underlying Queue's fixed element size.
func (c *Consumer) ElemSize() int { return c.q.elemSize }

// Push enqueues len(elems)/ElemSize() elements, in order. len(elems) must be
// a multiple of ElemSize(); Push panics otherwise.
//
// Push may block while the queue is full and at least one Consumer remains.
// If the last Consumer has already dropped, Push returns immediately
// without enqueueing anything — there is no one left to read it.
//
// A Push that fits in a single transaction — len(elems)/ElemSize() <=
// MaxCap()-current element count at the moment the lock is first acquired
// — is fully atomic with respect to other pushes. A larger push is split
// into multiple transactions, yielding the lock between them so consumers
// can drain; concurrent oversized pushes may then interleave at those
// chunk boundaries. Callers requiring whole-push atomicity across such
// splits must serialize their own pushes.
//
// Push panics if this handle has already been dropped.
func (p *Producer) Push(elems []byte) {
	if p.dropped.Load() {
		panic("pipequeue: Push on a dropped Producer")
	}
	p.q.push(elems)
}

// Drop releases this Producer handle. Pushing through a dropped handle
// panics. Drop panics if called more than once on the same handle.
func (p *Producer) Drop() {
	if !p.dropped.CompareAndSwap(false, true) {
		panic("pipequeue: Producer dropped more than once")
	}
	p.q.dropProducerRef()
}

// Pop dequeues up to len(dst)/ElemSize() elements into dst, returning the
// number of elements actually transferred. len(dst) must be a multiple of
// ElemSize(); Pop panics otherwise.
//
// Pop may block while the queue holds fewer elements than requested and at
// least one Producer remains. It returns fewer than requested — possibly
// zero — once every Producer has dropped; a zero return is the clean
// end-of-stream signal and is not an error. A non-zero, partial return
// means more may still arrive.
//
// Pop panics if this handle has already been dropped, or if dst is nil.
func (c *Consumer) Pop(dst []byte) int {
	if c.dropped.Load() {
		panic("pipequeue: Pop on a dropped Consumer")
	}
	return c.q.pop(dst)
}

// Drop releases this Consumer handle. If it was the last live Consumer, the
// Queue's backing storage is released immediately and any Producer
// blocked on a full queue wakes to observe that pushes are now no-ops.
// Popping through a dropped handle panics. Drop panics if called more than
// once on the same handle.
func (c *Consumer) Drop() {
	if !c.dropped.CompareAndSwap(false, true) {
		panic("pipequeue: Consumer dropped more than once")
	}
	c.q.dropConsumerRef()
}
