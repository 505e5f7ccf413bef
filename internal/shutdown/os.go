package shutdown

import (
	"os"
	"os/signal"
)

// OSSignaler is an AtomicSignaler wired to os/signal, so a demo command's
// feeder goroutine can stop pushing on a real SIGINT/SIGTERM instead of
// only a programmatic Cancel().
type OSSignaler struct {
	*AtomicSignaler
	ch   chan os.Signal
	stop func()
}

// NewFromOS creates an OSSignaler that calls Cancel automatically when any
// of sig is received. If sig is empty it defaults to os.Interrupt.
func NewFromOS(sig ...os.Signal) *OSSignaler {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt}
	}

	s := &OSSignaler{
		AtomicSignaler: NewAtomic(),
		ch:             make(chan os.Signal, 1),
	}
	signal.Notify(s.ch, sig...)
	s.stop = func() { signal.Stop(s.ch) }

	go func() {
		if _, ok := <-s.ch; ok {
			s.Cancel()
		}
	}()

	return s
}

// Close stops listening for OS signals. It does not itself trigger Cancel.
func (s *OSSignaler) Close() {
	s.stop()
	close(s.ch)
}
