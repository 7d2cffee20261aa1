// Package data implements the scene dataset pipeline: loading simulation
// frames from in-memory slices or scene directories and composing them into
// shuffled, batched, prefetched example streams.
//
// An example is a []backends.Tensor, one tensor per requested field, in the
// order the fields were requested. Sequences are pull-based: Next returns the
// next example or io.EOF, and Reset rewinds to the beginning.
//
// Unlike package backends, the pipeline reports failures as error returns
// rather than panics: I/O errors are expected at this layer.
package data

import (
	"io"

	"github.com/pkg/errors"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
)

// FieldSpec names one simulation field and its dtype, e.g. {"velocity",
// Float32}.
type FieldSpec struct {
	Name  string
	DType dtypes.DType
}

// Source is random access to the frames of one scene.
type Source interface {
	// NumFrames returns the number of frames available.
	NumFrames() int

	// LoadFrame loads the requested fields of one frame, in request order.
	LoadFrame(frame int, fields []FieldSpec) ([]backends.Tensor, error)
}

// Sequence is a resettable stream of examples.
type Sequence interface {
	// Next returns the next example, or io.EOF when the sequence is exhausted.
	Next() ([]backends.Tensor, error)

	// Reset rewinds the sequence to its beginning.
	Reset() error
}

// SliceSource is an in-memory Source: one []backends.Tensor per frame, with
// the fields each frame carries described by Fields.
type SliceSource struct {
	fields []FieldSpec
	frames [][]backends.Tensor
}

// NewSliceSource wraps pre-built frame tensors as a Source. Every frame must
// carry one tensor per field, in field order.
func NewSliceSource(fields []FieldSpec, frames [][]backends.Tensor) (*SliceSource, error) {
	for i, frame := range frames {
		if len(frame) != len(fields) {
			return nil, errors.Errorf("frame %d has %d tensors, want one per field (%d)", i, len(frame), len(fields))
		}
	}
	return &SliceSource{fields: fields, frames: frames}, nil
}

// NumFrames implements Source.
func (s *SliceSource) NumFrames() int { return len(s.frames) }

// LoadFrame implements Source.
func (s *SliceSource) LoadFrame(frame int, fields []FieldSpec) ([]backends.Tensor, error) {
	if frame < 0 || frame >= len(s.frames) {
		return nil, errors.Errorf("frame %d out of range, source has %d frames", frame, len(s.frames))
	}
	example := make([]backends.Tensor, len(fields))
	for i, field := range fields {
		found := false
		for j, have := range s.fields {
			if have.Name == field.Name {
				example[i] = s.frames[frame][j]
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("source has no field %q", field.Name)
		}
	}
	return example, nil
}

// sourceSequence iterates the frames of a Source in order.
type sourceSequence struct {
	src    Source
	fields []FieldSpec
	next   int
}

// FromSource returns a Sequence yielding every frame of src in order, loading
// the given fields.
func FromSource(src Source, fields []FieldSpec) Sequence {
	return &sourceSequence{src: src, fields: fields}
}

func (s *sourceSequence) Next() ([]backends.Tensor, error) {
	if s.next >= s.src.NumFrames() {
		return nil, io.EOF
	}
	example, err := s.src.LoadFrame(s.next, s.fields)
	if err != nil {
		return nil, errors.WithMessagef(err, "loading frame %d", s.next)
	}
	s.next++
	return example, nil
}

func (s *sourceSequence) Reset() error {
	s.next = 0
	return nil
}
