package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
)

// padAxisCoord maps an output coordinate (already shifted so that 0 is the
// first source element, i.e. it ranges over [-before, dim+after)) to the source
// coordinate it reads from. Constant mode returns -1 for out-of-range
// coordinates: those elements keep the fill value.
func padAxisCoord(c, dim int, mode backends.PadMode) int {
	if c >= 0 && c < dim {
		return c
	}
	switch mode {
	case backends.PadConstant:
		return -1
	case backends.PadReplicate:
		if c < 0 {
			return 0
		}
		return dim - 1
	case backends.PadCircular:
		return ((c % dim) + dim) % dim
	case backends.PadReflect:
		// Mirror excluding the edge: [1 2 3] -> ... 3 2 | 1 2 3 | 2 1 ...
		if dim == 1 {
			return 0
		}
		period := 2 * (dim - 1)
		c = ((c % period) + period) % period
		if c >= dim {
			c = period - c
		}
		return c
	case backends.PadSymmetric:
		// Mirror including the edge: [1 2 3] -> ... 2 1 | 1 2 3 | 3 2 ...
		// For widths <= 1 this coincides with replicate.
		period := 2 * dim
		c = ((c % period) + period) % period
		if c >= dim {
			c = period - 1 - c
		}
		return c
	}
	exceptions.Panicf("purego: unknown pad mode %s", mode)
	return 0
}

// padPass applies one single-mode pass over the axes its widths name.
func (b *Backend) padPass(t *Tensor, pass backends.PadPass) *Tensor {
	rank := t.shape.Rank()
	if len(pass.Widths) != rank {
		exceptions.Panicf("purego: pad pass over %d axes applied to %s", len(pass.Widths), t.shape)
	}
	outDims := make([]int, rank)
	for a, dim := range t.shape.Dimensions {
		outDims[a] = dim + pass.Widths[a][0] + pass.Widths[a][1]
		if outDims[a] <= 0 {
			exceptions.Panicf("purego: pad widths %v shrink %s below zero size", pass.Widths, t.shape)
		}
	}
	outShape := shapes.Make(t.shape.DType, outDims...)
	out := newTensor(outShape)
	if pass.Mode == backends.PadConstant && pass.Value != 0 {
		dispatchFill.dispatch(outShape.DType, out.flat, scalarForDType(outShape.DType, pass.Value))
	}
	srcStrides := t.shape.Strides()
	indices := make([]int, outShape.Size())
	coord := make([]int, rank)
	for i := range indices {
		src := 0
		for a, c := range coord {
			sc := padAxisCoord(c-pass.Widths[a][0], t.shape.Dimensions[a], pass.Mode)
			if sc < 0 {
				src = -1
				break
			}
			src += sc * srcStrides[a]
		}
		indices[i] = src
		incrCoord(coord, outDims)
	}
	dispatchCopyIndexed.dispatch(t.shape.DType, t.flat, out.flat, indices)
	return out
}

// Pad extends the tensor per axis according to spec. A mixed spec is decomposed
// into single-mode passes applied sequentially; see backends.PadSpec.Split.
func (b *Backend) Pad(t backends.Tensor, spec backends.PadSpec) backends.Tensor {
	tt := tensorOf(t)
	if len(spec) != tt.shape.Rank() {
		exceptions.Panicf("purego: Pad spec covers %d axes, tensor is %s", len(spec), tt.shape)
	}
	for _, pass := range spec.Split() {
		tt = b.padPass(tt, pass)
	}
	return tt
}
