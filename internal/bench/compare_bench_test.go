package bench_test

import (
	"sync/atomic"
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"
	"github.com/randomizedcoder/pipequeue/pipequeue"
	"github.com/randomizedcoder/pipequeue/internal/bench"
)

// Sink variables, so the compiler can't eliminate the benchmark loops.
var sinkInt int
var sinkBool bool

// ============================================================================
// SPSC: 1 Producer -> 1 Consumer
// ============================================================================

// BenchmarkCompare_SPSC_Channel is the non-blocking channel baseline.
func BenchmarkCompare_SPSC_Channel(b *testing.B) {
	q := bench.NewChannelQueue[int](1024)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				q.Pop()
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !q.Push(i) {
		}
	}
	b.StopTimer()
	close(done)
}

// BenchmarkCompare_SPSC_PipeQueue exercises the blocking, resizable Queue
// this module implements, single producer and single consumer.
func BenchmarkCompare_SPSC_PipeQueue(b *testing.B) {
	q := pipequeue.New(8, 1024)
	p := q.NewProducer()
	c := q.NewConsumer()
	q.Drop()
	done := make(chan struct{})

	go func() {
		dst := make([]byte, 8)
		for {
			select {
			case <-done:
				return
			default:
				c.Pop(dst)
			}
		}
	}()

	src := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Push(src)
	}
	b.StopTimer()
	close(done)
	p.Drop()
	c.Drop()
}

// BenchmarkCompare_SPSC_ShardedRing1 uses go-lock-free-ring with a single
// shard, the closest analogue to an SPSC arrangement it supports.
func BenchmarkCompare_SPSC_ShardedRing1(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		b.Fatalf("NewShardedRing: %v", err)
	}
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !r.Write(0, i) {
		}
	}
	b.StopTimer()
	close(done)
}

// ============================================================================
// MPMC: N Producers -> M Consumers (pipequeue's actual target shape)
// ============================================================================

// BenchmarkCompare_MPMC_Channel_4P4C uses a shared buffered channel with 4
// consumer goroutines and 4×GOMAXPROCS producer goroutines
// (b.SetParallelism(4)).
func BenchmarkCompare_MPMC_Channel_4P4C(b *testing.B) {
	q := bench.NewChannelQueue[int](1024)
	done := make(chan struct{})

	for c := 0; c < 4; c++ {
		go func() {
			for {
				select {
				case <-done:
					return
				default:
					q.Pop()
				}
			}
		}()
	}

	b.SetParallelism(4)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			for !q.Push(i) {
			}
			i++
		}
	})
	b.StopTimer()
	close(done)
}

// BenchmarkCompare_MPMC_PipeQueue_4P4C exercises pipequeue.Queue with 4
// producer handles and 4 consumer handles concurrently, its native shape.
func BenchmarkCompare_MPMC_PipeQueue_4P4C(b *testing.B) {
	q := pipequeue.New(8, 1024)
	producers := make([]*pipequeue.Producer, 4)
	for i := range producers {
		producers[i] = q.NewProducer()
	}
	consumers := make([]*pipequeue.Consumer, 4)
	for i := range consumers {
		consumers[i] = q.NewConsumer()
	}
	q.Drop()
	done := make(chan struct{})

	for _, c := range consumers {
		go func(c *pipequeue.Consumer) {
			dst := make([]byte, 8)
			for {
				select {
				case <-done:
					return
				default:
					c.Pop(dst)
				}
			}
		}(c)
	}

	var idx int64
	b.SetParallelism(4)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		n := atomic.AddInt64(&idx, 1) - 1
		p := producers[n%int64(len(producers))]
		src := make([]byte, 8)
		for pb.Next() {
			p.Push(src)
		}
	})
	b.StopTimer()
	close(done)
	for _, p := range producers {
		p.Drop()
	}
	for _, c := range consumers {
		c.Drop()
	}
}

// BenchmarkCompare_MPMC_ShardedRing4 uses go-lock-free-ring sharded across 4
// producers (its intended MPSC use case).
func BenchmarkCompare_MPMC_ShardedRing4(b *testing.B) {
	r, err := ring.NewShardedRing(2048, 4)
	if err != nil {
		b.Fatalf("NewShardedRing: %v", err)
	}
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				sinkInt, sinkBool = r.TryRead()
			}
		}
	}()

	var idx int64
	b.SetParallelism(4)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		shard := int(atomic.AddInt64(&idx, 1)-1) % 4
		i := 0
		for pb.Next() {
			for !r.Write(shard, i) {
			}
			i++
		}
	})
	b.StopTimer()
	close(done)
}
