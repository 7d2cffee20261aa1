package data

import (
	"io"

	"github.com/fluidml/fluidml/backends"
)

// ConcatSequences chains sequences back to back: all examples of the first,
// then all of the second, and so on. The sequences are combined as a balanced
// binary tree, so the recursion depth of Next stays O(log n) however many
// scene sources are chained; the element order is exactly that of a naive
// left-to-right chain.
func ConcatSequences(seqs ...Sequence) Sequence {
	switch len(seqs) {
	case 0:
		return emptySequence{}
	case 1:
		return seqs[0]
	}
	mid := (len(seqs) + 1) / 2
	return &pairSequence{
		head: ConcatSequences(seqs[:mid]...),
		tail: ConcatSequences(seqs[mid:]...),
	}
}

type emptySequence struct{}

func (emptySequence) Next() ([]backends.Tensor, error) { return nil, io.EOF }
func (emptySequence) Reset() error                     { return nil }

// pairSequence exhausts head, then tail.
type pairSequence struct {
	head, tail Sequence
	onTail     bool
}

func (p *pairSequence) Next() ([]backends.Tensor, error) {
	if !p.onTail {
		example, err := p.head.Next()
		if err != io.EOF {
			return example, err
		}
		p.onTail = true
	}
	return p.tail.Next()
}

func (p *pairSequence) Reset() error {
	p.onTail = false
	if err := p.head.Reset(); err != nil {
		return err
	}
	return p.tail.Reset()
}
