package data

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/fluidml/fluidml/backends"
)

// prefetchSequence decouples production from consumption: a single producer
// goroutine pulls from the underlying sequence into a bounded channel, so the
// consumer never waits for I/O that already happened. One producer keeps the
// element order intact; the channel capacity bounds how far it runs ahead.
type prefetchSequence struct {
	seq   Sequence
	ahead int

	ch   chan prefetchItem
	stop chan struct{}
	wg   sync.WaitGroup

	// err is sticky: once the producer fails (or finishes with io.EOF), every
	// later Next returns the same error until Reset.
	err error
}

type prefetchItem struct {
	example []backends.Tensor
	err     error
}

// Prefetch returns a Sequence that reads up to ahead examples of seq in the
// background. The underlying sequence is only accessed by the producer
// goroutine, so it need not be thread safe.
//
// Reset tears the producer down and rebuilds it from scratch; there is no
// finer-grained cancellation.
func Prefetch(seq Sequence, ahead int) Sequence {
	if ahead < 1 {
		panic(errors.Errorf("data.Prefetch: ahead=%d must be >= 1", ahead))
	}
	p := &prefetchSequence{seq: seq, ahead: ahead}
	p.start()
	return p
}

func (p *prefetchSequence) start() {
	p.ch = make(chan prefetchItem, p.ahead)
	p.stop = make(chan struct{})
	p.err = nil
	p.wg.Add(1)
	go func(ch chan prefetchItem, stop chan struct{}) {
		defer p.wg.Done()
		defer close(ch)
		for {
			example, err := p.seq.Next()
			select {
			case <-stop:
				return
			case ch <- prefetchItem{example: example, err: err}:
			}
			if err != nil {
				// io.EOF included: the producer is done until Reset.
				return
			}
		}
	}(p.ch, p.stop)
}

func (p *prefetchSequence) Next() ([]backends.Tensor, error) {
	if p.err != nil {
		return nil, p.err
	}
	item, ok := <-p.ch
	if !ok {
		return nil, errors.Errorf("data.Prefetch: producer stopped unexpectedly")
	}
	if item.err != nil {
		p.err = item.err
		return nil, item.err
	}
	return item.example, nil
}

func (p *prefetchSequence) Reset() error {
	close(p.stop)
	// Unblock a producer stuck on a full channel, then wait it out.
	for range p.ch {
	}
	p.wg.Wait()
	if err := p.seq.Reset(); err != nil {
		return err
	}
	p.start()
	return nil
}
