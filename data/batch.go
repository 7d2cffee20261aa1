package data

import (
	"io"

	"github.com/pkg/errors"

	"github.com/fluidml/fluidml/backends"
)

// batchSequence groups consecutive examples into batches, stacking each field
// along a new leading axis 0. An incomplete tail batch is dropped.
type batchSequence struct {
	b         backends.Backend
	seq       Sequence
	batchSize int
}

// BatchOf batches seq into groups of batchSize examples, stacked along a new
// axis 0 per field. The trailing incomplete batch, if any, is dropped.
func BatchOf(b backends.Backend, seq Sequence, batchSize int) Sequence {
	if batchSize < 1 {
		panic(errors.Errorf("data.BatchOf: batchSize=%d must be >= 1", batchSize))
	}
	return &batchSequence{b: b, seq: seq, batchSize: batchSize}
}

func (s *batchSequence) Next() ([]backends.Tensor, error) {
	group := make([][]backends.Tensor, 0, s.batchSize)
	for len(group) < s.batchSize {
		example, err := s.seq.Next()
		if err == io.EOF {
			return nil, io.EOF // drop the incomplete tail
		}
		if err != nil {
			return nil, err
		}
		group = append(group, example)
	}
	batch := make([]backends.Tensor, len(group[0]))
	stack := make([]backends.Tensor, s.batchSize)
	for f := range batch {
		for i, example := range group {
			stack[i] = example[f]
		}
		batch[f] = s.b.Stack(stack, 0)
	}
	return batch, nil
}

func (s *batchSequence) Reset() error { return s.seq.Reset() }
