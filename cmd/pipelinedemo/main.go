// Command pipelinedemo runs a small two-stage int64 pipeline: a "double"
// stage followed by a "keep evens" filter. It feeds an increasing sequence
// of int64s until interrupted (Ctrl-C or SIGTERM) or -n values have been
// fed, while a second goroutine drains the tail, and reports how many values
// were fed and how many results were received.
//
// Usage:
//
//	go run ./cmd/pipelinedemo -n 1000000
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/randomizedcoder/pipequeue/internal/progress"
	"github.com/randomizedcoder/pipequeue/internal/shutdown"
	"github.com/randomizedcoder/pipequeue/pipeline"
	"github.com/randomizedcoder/pipequeue/pipequeue"
)

const elemSize = 8 // int64

func main() {
	n := flag.Int("n", 1_000_000, "number of values to feed")
	flag.Parse()

	sig := shutdown.NewFromOS(os.Interrupt, syscall.SIGTERM)
	defer sig.Close()

	h, err := pipeline.Build(nil, elemSize,
		pipeline.Stage{Func: doubleStage, ElemSize: elemSize},
		pipeline.Stage{Func: evenFilterStage, ElemSize: elemSize},
	)
	if err != nil {
		fmt.Printf("pipeline.Build: %v\n", err)
		return
	}

	tick := progress.NewStd(time.Second)
	defer tick.Stop()
	fed, received := feedAndDrain(h, sig, tick, *n)

	if err := h.Wait(); err != nil {
		fmt.Printf("stage error: %v\n", err)
	}

	fmt.Printf("fed %d values, received %d results\n", fed, received)
}

// feedAndDrain runs the feeder and drainer concurrently so results are
// consumed while values are still being fed, and returns the counts once
// both sides finish.
func feedAndDrain(h *pipeline.Handle, sig shutdown.Signaler, tick progress.Ticker, n int) (fed, received int64) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer h.Tail().Drop()

		var buf [elemSize]byte
		for {
			r := h.Tail().Pop(buf[:])
			if r == 0 {
				return
			}
			received++
			if tick.Tick() {
				fmt.Printf("  ... %d results so far\n", received)
			}
		}
	}()

	var buf [elemSize]byte
	for i := 0; i < n && !sig.Done(); i++ {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h.Head().Push(buf[:])
		fed++
	}
	h.Head().Drop()

	<-done
	return fed, received
}

// doubleStage multiplies every int64 in the batch by two.
func doubleStage(batch []byte, count int, out *pipequeue.Producer, _ any) error {
	buf := make([]byte, elemSize)
	for i := 0; i < count; i++ {
		v := int64(binary.LittleEndian.Uint64(batch[i*elemSize : (i+1)*elemSize]))
		binary.LittleEndian.PutUint64(buf, uint64(v*2))
		out.Push(buf)
	}
	return nil
}

// evenFilterStage forwards only even values; doubleStage guarantees every
// value reaching here is even, so in practice this stage is a passthrough,
// but it demonstrates a stage that can drop elements.
func evenFilterStage(batch []byte, count int, out *pipequeue.Producer, _ any) error {
	for i := 0; i < count; i++ {
		v := int64(binary.LittleEndian.Uint64(batch[i*elemSize : (i+1)*elemSize]))
		if v%2 == 0 {
			out.Push(batch[i*elemSize : (i+1)*elemSize])
		}
	}
	return nil
}
