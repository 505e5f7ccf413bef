// Package pipequeue implements a thread-safe, dynamically-resizing FIFO
// queue of fixed-size byte elements.
//
// A Queue is created with New and immediately counts as both one Producer
// and one Consumer (the root handle). Additional Producer and Consumer
// handles are minted with NewProducer and NewConsumer; each is independently
// reference-counted. Dropping the last Consumer frees the backing storage
// even while Producers remain — their subsequent pushes silently become
// no-ops. Dropping the last Producer wakes blocked consumers so that a
// draining pop loop observes a clean end-of-stream (a zero-length pop).
//
// Push and Pop may both block: Push while the queue is full and at least
// one Consumer remains, Pop while the queue holds fewer elements than
// requested and at least one Producer remains. Neither operation supports
// cancellation or a timeout — termination is effected only by dropping all
// handles of the opposite kind. See Producer.Push and Consumer.Pop for the
// exact blocking contract.
package pipequeue
