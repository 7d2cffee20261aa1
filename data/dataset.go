package data

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/fluidml/fluidml/backends"
)

// DatasetOptions configures NewDataset. Zero values disable the corresponding
// stage.
type DatasetOptions struct {
	// WindowSize stacks this many consecutive frames per example; 0 yields
	// single frames.
	WindowSize int
	// OuterStride is the step between window starts; defaults to 1.
	OuterStride int
	// InnerStride is the step between the frames inside a window; defaults to 1.
	InnerStride int
	// ShuffleBuffer is the size of the shuffle buffer; 0 keeps the order.
	ShuffleBuffer int
	// Seed drives the shuffle.
	Seed uint64
	// BatchSize stacks this many examples per batch along a new axis 0; 0
	// yields single examples.
	BatchSize int
	// PrefetchAhead reads this many examples ahead in a background goroutine;
	// 0 reads synchronously.
	PrefetchAhead int
}

// NewDataset wires the pipeline stages in the canonical order: one sequence
// per source, windowed, concatenated (balanced), shuffled, batched and
// prefetched. Stages whose option is zero are skipped.
func NewDataset(b backends.Backend, sources []Source, fields []FieldSpec, opts DatasetOptions) (Sequence, error) {
	if len(sources) == 0 {
		return nil, errors.Errorf("data.NewDataset: no sources")
	}
	outerStride := opts.OuterStride
	if outerStride == 0 {
		outerStride = 1
	}
	innerStride := opts.InnerStride
	if innerStride == 0 {
		innerStride = 1
	}
	seqs := make([]Sequence, len(sources))
	for i, src := range sources {
		seq := FromSource(src, fields)
		if opts.WindowSize > 0 {
			seq = Window(b, seq, opts.WindowSize, outerStride, innerStride)
		}
		seqs[i] = seq
	}
	seq := ConcatSequences(seqs...)
	if opts.ShuffleBuffer > 0 {
		seq = Shuffle(seq, opts.ShuffleBuffer, opts.Seed)
	}
	if opts.BatchSize > 0 {
		seq = BatchOf(b, seq, opts.BatchSize)
	}
	if opts.PrefetchAhead > 0 {
		seq = Prefetch(seq, opts.PrefetchAhead)
	}
	klog.V(1).Infof("data: dataset over %d sources, %d fields (window=%d batch=%d shuffle=%d prefetch=%d)",
		len(sources), len(fields), opts.WindowSize, opts.BatchSize, opts.ShuffleBuffer, opts.PrefetchAhead)
	return seq, nil
}
