// Command queuebench benchmarks pipequeue.Queue against the channel-based
// ChannelQueue and the go-lock-free-ring sharded ring, single producer /
// single consumer.
//
// Usage:
//
//	go run ./cmd/queuebench -n 10000000 -size 1024
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"time"

	ring "github.com/randomizedcoder/go-lock-free-ring"
	"github.com/randomizedcoder/pipequeue/internal/bench"
	"github.com/randomizedcoder/pipequeue/pipequeue"
)

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "queue capacity (elements)")
	flag.Parse()

	fmt.Printf("Benchmarking SPSC queue (%d iterations, size=%d)\n", *iterations, *size)
	fmt.Println("─────────────────────────────────────────────────")

	chDur := benchChannelQueue(*iterations, *size)
	pqDur := benchPipeQueue(*iterations, *size)
	ringDur := benchShardedRing(*iterations, *size)

	chPerOp := float64(chDur.Nanoseconds()) / float64(*iterations)
	pqPerOp := float64(pqDur.Nanoseconds()) / float64(*iterations)
	ringPerOp := float64(ringDur.Nanoseconds()) / float64(*iterations)

	fmt.Printf("\nResults (push + pop per iteration):\n")
	fmt.Printf("  ChannelQueue:  %v (%.2f ns/op)\n", chDur, chPerOp)
	fmt.Printf("  pipequeue:     %v (%.2f ns/op)\n", pqDur, pqPerOp)
	fmt.Printf("  ShardedRing:   %v (%.2f ns/op)\n", ringDur, ringPerOp)

	fmt.Printf("\nThroughput (theoretical max):\n")
	fmt.Printf("  ChannelQueue:  %.2f M ops/sec\n", 1000/chPerOp)
	fmt.Printf("  pipequeue:     %.2f M ops/sec\n", 1000/pqPerOp)
	fmt.Printf("  ShardedRing:   %.2f M ops/sec\n", 1000/ringPerOp)
}

func benchChannelQueue(iterations, size int) time.Duration {
	q := bench.NewChannelQueue[int](size)
	start := time.Now()
	for i := 0; i < iterations; i++ {
		q.Push(i)
		q.Pop()
	}
	return time.Since(start)
}

func benchPipeQueue(iterations, size int) time.Duration {
	q := pipequeue.New(8, size)
	p := q.NewProducer()
	c := q.NewConsumer()
	defer p.Drop()
	defer c.Drop()

	var buf [8]byte
	start := time.Now()
	for i := 0; i < iterations; i++ {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		p.Push(buf[:])
		c.Pop(buf[:])
	}
	return time.Since(start)
}

func benchShardedRing(iterations, size int) time.Duration {
	r, err := ring.NewShardedRing(size, 1)
	if err != nil {
		panic(err)
	}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		r.Write(0, i)
		r.TryRead()
	}
	return time.Since(start)
}
