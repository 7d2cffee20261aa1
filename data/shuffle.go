package data

import (
	"io"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/fluidml/fluidml/backends"
)

// shuffleSequence is a buffered shuffle: it keeps up to bufferSize examples
// in memory and, for every Next, swaps a random buffered example for a freshly
// pulled one. A full pass is only a true permutation when the buffer covers
// the whole sequence; otherwise it's a windowed approximation, the usual
// trade-off for streams.
type shuffleSequence struct {
	seq        Sequence
	bufferSize int
	seed       uint64

	rng    *rand.Rand
	buffer [][]backends.Tensor
	filled bool
}

// Shuffle randomizes the order of seq using a buffer of the given size.
// The same seed yields the same order, and Reset replays it.
func Shuffle(seq Sequence, bufferSize int, seed uint64) Sequence {
	if bufferSize < 1 {
		panic(errors.Errorf("data.Shuffle: bufferSize=%d must be >= 1", bufferSize))
	}
	return &shuffleSequence{
		seq:        seq,
		bufferSize: bufferSize,
		seed:       seed,
		rng:        rand.New(rand.NewPCG(seed, seed)),
	}
}

func (s *shuffleSequence) fill() error {
	for len(s.buffer) < s.bufferSize {
		example, err := s.seq.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		s.buffer = append(s.buffer, example)
	}
	s.filled = true
	return nil
}

func (s *shuffleSequence) Next() ([]backends.Tensor, error) {
	if !s.filled {
		if err := s.fill(); err != nil {
			return nil, err
		}
	}
	if len(s.buffer) == 0 {
		return nil, io.EOF
	}
	pick := s.rng.IntN(len(s.buffer))
	example := s.buffer[pick]
	replacement, err := s.seq.Next()
	if err == io.EOF {
		// Drain the buffer.
		last := len(s.buffer) - 1
		s.buffer[pick] = s.buffer[last]
		s.buffer = s.buffer[:last]
		return example, nil
	}
	if err != nil {
		return nil, err
	}
	s.buffer[pick] = replacement
	return example, nil
}

func (s *shuffleSequence) Reset() error {
	s.buffer = nil
	s.filled = false
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed))
	return s.seq.Reset()
}
