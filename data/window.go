package data

import (
	"io"

	"github.com/pkg/errors"

	"github.com/fluidml/fluidml/backends"
)

// windowSequence yields sliding frame windows: window w is built from the
// underlying examples at positions w*outerStride + k*innerStride for
// k in [0, size), with each field stacked along a new leading axis.
type windowSequence struct {
	b           backends.Backend
	seq         Sequence
	size        int
	outerStride int
	innerStride int

	buffer [][]backends.Tensor // examples pulled so far, from the current start
	offset int                 // position of buffer[0] in the underlying stream
	window int
	eof    bool
}

// Window stacks size consecutive examples of seq into one example per window,
// along a new leading axis. outerStride is the step between window starts,
// innerStride the step between the examples inside a window. Trailing examples
// that don't fill a whole window are dropped.
func Window(b backends.Backend, seq Sequence, size, outerStride, innerStride int) Sequence {
	if size < 1 || outerStride < 1 || innerStride < 1 {
		panic(errors.Errorf("data.Window: size=%d, outerStride=%d, innerStride=%d must all be >= 1",
			size, outerStride, innerStride))
	}
	return &windowSequence{b: b, seq: seq, size: size, outerStride: outerStride, innerStride: innerStride}
}

func (w *windowSequence) Next() ([]backends.Tensor, error) {
	start := w.window * w.outerStride
	last := start + (w.size-1)*w.innerStride
	// Pull until the last frame of the window is buffered.
	for w.offset+len(w.buffer) <= last {
		if w.eof {
			return nil, io.EOF
		}
		example, err := w.seq.Next()
		if err == io.EOF {
			w.eof = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		w.buffer = append(w.buffer, example)
	}
	first := w.buffer[start-w.offset]
	stacked := make([]backends.Tensor, len(first))
	group := make([]backends.Tensor, w.size)
	for f := range first {
		for k := 0; k < w.size; k++ {
			group[k] = w.buffer[start-w.offset+k*w.innerStride][f]
		}
		stacked[f] = w.b.Stack(group, 0)
	}
	w.window++
	// Frames before the next window's start are never needed again.
	if drop := w.window*w.outerStride - w.offset; drop > 0 {
		if drop > len(w.buffer) {
			drop = len(w.buffer)
		}
		w.buffer = w.buffer[drop:]
		w.offset += drop
	}
	return stacked, nil
}

func (w *windowSequence) Reset() error {
	w.buffer = nil
	w.offset = 0
	w.window = 0
	w.eof = false
	return w.seq.Reset()
}
