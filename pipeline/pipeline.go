package pipeline

import (
	"errors"
	"sync"

	"github.com/randomizedcoder/pipequeue/pipequeue"
)

// batchSize is the number of elements a stage worker pops at a time.
const batchSize = 32

// ErrZeroElementSize is returned by Build when a Stage names an element
// size of zero.
var ErrZeroElementSize = errors.New("pipeline: stage element size must be > 0")

// StageFunc transforms one popped batch, pushing zero or more output
// elements onto out before returning. Returning a non-nil error aborts the
// stage: its handles are dropped (propagating end-of-stream downstream
// exactly as a clean finish would) and the error is observable from the
// Handle returned by Build via Wait.
type StageFunc func(batch []byte, count int, out *pipequeue.Producer, aux any) error

// Stage describes one pipeline transformation step: the function to run and
// the byte size of the elements it produces.
type Stage struct {
	Func     StageFunc
	ElemSize int
}

// Handle is the result of Build: a head Producer feeding the chain and a
// tail Consumer draining it, plus the means to wait for every worker to
// exit.
type Handle struct {
	head *pipequeue.Producer
	tail *pipequeue.Consumer

	wg    sync.WaitGroup
	errCh chan error
}

// Head returns the Producer that feeds the first queue in the chain.
func (h *Handle) Head() *pipequeue.Producer { return h.head }

// Tail returns the Consumer that drains the last queue in the chain.
func (h *Handle) Tail() *pipequeue.Consumer { return h.tail }

// Wait blocks until every stage worker has exited (which happens once
// end-of-stream has propagated all the way through, or a stage returns an
// error) and returns the first stage error observed, if any.
func (h *Handle) Wait() error {
	h.wg.Wait()
	close(h.errCh)
	for err := range h.errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// Build constructs a linear chain of elemSize, stages[0].ElemSize, ...,
// stages[len(stages)-1].ElemSize queues, connected by one background worker
// goroutine per stage. It returns the head Producer (feed the chain) and
// tail Consumer (drain it) wrapped in a Handle.
//
// A Stage with ElemSize <= 0 is rejected up front with ErrZeroElementSize
// before any queue is constructed, so nothing is ever left half-connected.
func Build(aux any, elemSize int, stages ...Stage) (*Handle, error) {
	if elemSize <= 0 {
		return nil, ErrZeroElementSize
	}
	for _, s := range stages {
		if s.ElemSize <= 0 {
			return nil, ErrZeroElementSize
		}
	}

	root := pipequeue.New(elemSize, 0)
	head := root.NewProducer()
	cur := root.NewConsumer()
	root.Drop()

	h := &Handle{
		head:  head,
		errCh: make(chan error, len(stages)),
	}

	for _, stage := range stages {
		outQ := pipequeue.New(stage.ElemSize, 0)
		outProducer := outQ.NewProducer()
		nextConsumer := outQ.NewConsumer()
		outQ.Drop()

		h.wg.Add(1)
		go runStage(cur, stage.Func, aux, outProducer, h.errCh, &h.wg)

		cur = nextConsumer
	}

	h.tail = cur
	return h, nil
}

func runStage(in *pipequeue.Consumer, fn StageFunc, aux any, out *pipequeue.Producer, errCh chan error, wg *sync.WaitGroup) {
	defer wg.Done()
	defer in.Drop()
	defer out.Drop()

	elemSize := in.ElemSize()
	batch := make([]byte, batchSize*elemSize)

	for {
		n := in.Pop(batch)
		if n == 0 {
			return
		}
		if err := fn(batch[:n*elemSize], n, out, aux); err != nil {
			select {
			case errCh <- err:
			default:
			}
			return
		}
	}
}
