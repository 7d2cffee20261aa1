package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
)

// incrCoord advances a multi-dimensional coordinate in row-major order.
func incrCoord(coord, dims []int) {
	for axis := len(coord) - 1; axis >= 0; axis-- {
		coord[axis]++
		if coord[axis] < dims[axis] {
			return
		}
		coord[axis] = 0
	}
}

// Transpose permutes the axes of the tensor: output axis i takes input axis
// axes[i].
func (b *Backend) Transpose(t backends.Tensor, axes []int) backends.Tensor {
	tt := tensorOf(t)
	rank := tt.shape.Rank()
	if len(axes) != rank {
		exceptions.Panicf("purego: Transpose axes %v don't match rank %d of %s", axes, rank, tt.shape)
	}
	seen := make([]bool, rank)
	outDims := make([]int, rank)
	for i, axis := range axes {
		if axis < 0 || axis >= rank || seen[axis] {
			exceptions.Panicf("purego: Transpose axes %v are not a permutation of 0..%d", axes, rank-1)
		}
		seen[axis] = true
		outDims[i] = tt.shape.Dimensions[axis]
	}
	srcStrides := tt.shape.Strides()
	outShape := shapes.Make(tt.shape.DType, outDims...)
	indices := make([]int, outShape.Size())
	coord := make([]int, rank)
	for i := range indices {
		src := 0
		for a, c := range coord {
			src += c * srcStrides[axes[a]]
		}
		indices[i] = src
		incrCoord(coord, outDims)
	}
	return copyIndexed(tt, indices, outShape)
}

// Reshape returns a tensor with the same data and new dimensions.
func (b *Backend) Reshape(t backends.Tensor, dimensions []int) backends.Tensor {
	tt := tensorOf(t)
	outShape := shapes.Make(tt.shape.DType, dimensions...)
	if outShape.Size() != tt.shape.Size() {
		exceptions.Panicf("purego: Reshape from %s to %v changes the number of elements", tt.shape, dimensions)
	}
	out := tt.Copy()
	out.shape = outShape
	return out
}

// ExpandDims inserts count axes of dimension 1 at the given axis.
func (b *Backend) ExpandDims(t backends.Tensor, axis, count int) backends.Tensor {
	tt := tensorOf(t)
	rank := tt.shape.Rank()
	pos := axis
	if pos < 0 {
		pos += rank + 1
	}
	if pos < 0 || pos > rank || count < 0 {
		exceptions.Panicf("purego: ExpandDims(axis=%d, count=%d) out of range for %s", axis, count, tt.shape)
	}
	dims := make([]int, 0, rank+count)
	dims = append(dims, tt.shape.Dimensions[:pos]...)
	for i := 0; i < count; i++ {
		dims = append(dims, 1)
	}
	dims = append(dims, tt.shape.Dimensions[pos:]...)
	return b.Reshape(tt, dims)
}

// Stack joins tensors of equal shape along a new axis.
func (b *Backend) Stack(ts []backends.Tensor, axis int) backends.Tensor {
	if len(ts) == 0 {
		exceptions.Panicf("purego: Stack of no tensors")
	}
	expanded := make([]backends.Tensor, len(ts))
	for i, t := range ts {
		expanded[i] = b.ExpandDims(t, axis, 1)
	}
	if axis < 0 {
		axis += tensorOf(ts[0]).shape.Rank() + 1
	}
	return b.Concat(expanded, axis)
}

// Concat joins tensors along an existing axis.
func (b *Backend) Concat(ts []backends.Tensor, axis int) backends.Tensor {
	if len(ts) == 0 {
		exceptions.Panicf("purego: Concat of no tensors")
	}
	cast := b.AutoCast(ts...)
	tensors := make([]*Tensor, len(cast))
	for i, t := range cast {
		tensors[i] = tensorOf(t)
	}
	first := tensors[0]
	rank := first.shape.Rank()
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		exceptions.Panicf("purego: Concat axis %d out of range for %s", axis, first.shape)
	}
	outDims := first.shape.Clone().Dimensions
	for _, tt := range tensors[1:] {
		if tt.shape.Rank() != rank {
			exceptions.Panicf("purego: Concat of tensors with different ranks: %s vs %s", first.shape, tt.shape)
		}
		for a := 0; a < rank; a++ {
			if a == axis {
				continue
			}
			if tt.shape.Dimensions[a] != outDims[a] {
				exceptions.Panicf("purego: Concat dimensions mismatch on axis %d: %s vs %s", a, first.shape, tt.shape)
			}
		}
		outDims[axis] += tt.shape.Dimensions[axis]
	}
	outShape := shapes.Make(first.shape.DType, outDims...)
	out := newTensor(outShape)
	outer := 1
	for a := 0; a < axis; a++ {
		outer *= outDims[a]
	}
	tail := 1
	for a := axis + 1; a < rank; a++ {
		tail *= outDims[a]
	}
	dstOff := 0
	for o := 0; o < outer; o++ {
		for _, tt := range tensors {
			block := tt.shape.Dimensions[axis] * tail
			copyBlock(out, dstOff, tt, o*block, block)
			dstOff += block
		}
	}
	return out
}

// Unstack splits the tensor along the given axis, removing it.
func (b *Backend) Unstack(t backends.Tensor, axis int) []backends.Tensor {
	tt := tensorOf(t)
	rank := tt.shape.Rank()
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		exceptions.Panicf("purego: Unstack axis %d out of range for %s", axis, tt.shape)
	}
	// Move axis to the front so every slice is one contiguous block.
	perm := make([]int, 0, rank)
	perm = append(perm, axis)
	for a := 0; a < rank; a++ {
		if a != axis {
			perm = append(perm, a)
		}
	}
	fronted := tensorOf(b.Transpose(tt, perm))
	n := tt.shape.Dimensions[axis]
	sliceDims := fronted.shape.Dimensions[1:]
	block := 1
	for _, dim := range sliceDims {
		block *= dim
	}
	result := make([]backends.Tensor, n)
	for i := 0; i < n; i++ {
		slice := newTensor(shapes.Make(tt.shape.DType, sliceDims...))
		copyBlock(slice, 0, fronted, i*block, block)
		result[i] = slice
	}
	return result
}

// Tile repeats the tensor multiples[i] times along axis i.
func (b *Backend) Tile(t backends.Tensor, multiples []int) backends.Tensor {
	tt := tensorOf(t)
	rank := tt.shape.Rank()
	if len(multiples) != rank {
		exceptions.Panicf("purego: Tile multiples %v don't match rank %d of %s", multiples, rank, tt.shape)
	}
	outDims := make([]int, rank)
	for a, m := range multiples {
		if m <= 0 {
			exceptions.Panicf("purego: Tile multiples %v must be positive", multiples)
		}
		outDims[a] = tt.shape.Dimensions[a] * m
	}
	outShape := shapes.Make(tt.shape.DType, outDims...)
	srcStrides := tt.shape.Strides()
	indices := make([]int, outShape.Size())
	coord := make([]int, rank)
	for i := range indices {
		src := 0
		for a, c := range coord {
			src += (c % tt.shape.Dimensions[a]) * srcStrides[a]
		}
		indices[i] = src
		incrCoord(coord, outDims)
	}
	return copyIndexed(tt, indices, outShape)
}

// BooleanMask returns the flattened elements of t where mask is true.
func (b *Backend) BooleanMask(t, mask backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	mm := tensorOf(mask)
	if mm.shape.DType != dtypes.Bool {
		exceptions.Panicf("purego: BooleanMask mask must be Bool, got %s", mm.shape)
	}
	if !mm.shape.EqualDimensions(tt.shape) {
		exceptions.Panicf("purego: BooleanMask dimensions mismatch: %s vs %s", tt.shape, mm.shape)
	}
	maskFlat := mm.flat.([]bool)
	indices := make([]int, 0, len(maskFlat))
	for i, keep := range maskFlat {
		if keep {
			indices = append(indices, i)
		}
	}
	outShape := shapes.Shape{DType: tt.shape.DType, Dimensions: []int{len(indices)}}
	out := newTensor(outShape)
	dispatchCopyIndexed.dispatch(tt.shape.DType, tt.flat, out.flat, indices)
	return out
}
