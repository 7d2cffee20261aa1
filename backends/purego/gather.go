package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
)

// GatherND indexes values using coordinate tuples held in the last axis of
// indices: each tuple of length d selects the sub-tensor values[i0, ..., id-1],
// and the result has shape indices.Dimensions[:-1] + values.Dimensions[d:].
//
// With batchDims == 1 the leading axis of both operands is an aligned batch
// axis: each batch element is gathered independently and the results are
// restacked along axis 0. Deeper batching is not supported.
func (b *Backend) GatherND(values, indices backends.Tensor, batchDims int) backends.Tensor {
	switch batchDims {
	case 0:
		return b.gatherND(tensorOf(values), tensorOf(indices))
	case 1:
		vs := b.Unstack(values, 0)
		is := b.Unstack(indices, 0)
		if len(vs) != len(is) {
			exceptions.Panicf("purego: GatherND batch axes differ: %d vs %d", len(vs), len(is))
		}
		out := make([]backends.Tensor, len(vs))
		for i := range vs {
			out[i] = b.gatherND(tensorOf(vs[i]), tensorOf(is[i]))
		}
		return b.Stack(out, 0)
	}
	panic(errNotImplementedf("GatherND with batchDims %d", batchDims))
}

func (b *Backend) gatherND(values, indices *Tensor) *Tensor {
	if !indices.shape.DType.IsInt() {
		exceptions.Panicf("purego: GatherND indices must be integer, got %s", indices.shape)
	}
	idxRank := indices.shape.Rank()
	if idxRank == 0 {
		exceptions.Panicf("purego: GatherND indices must have at least one axis")
	}
	depth := indices.shape.Dimensions[idxRank-1]
	if depth > values.shape.Rank() {
		exceptions.Panicf("purego: GatherND index tuples of length %d exceed rank of values %s", depth, values.shape)
	}
	idx := tensorOf(b.Cast(indices, dtypes.Int64)).flat.([]int64)
	valStrides := values.shape.Strides()
	sliceSize := 1
	for _, dim := range values.shape.Dimensions[depth:] {
		sliceSize *= dim
	}
	outDims := make([]int, 0, idxRank-1+values.shape.Rank()-depth)
	outDims = append(outDims, indices.shape.Dimensions[:idxRank-1]...)
	outDims = append(outDims, values.shape.Dimensions[depth:]...)
	outShape := shapes.Shape{DType: values.shape.DType, Dimensions: outDims}
	out := newTensor(outShape)
	numTuples := indices.shape.Size() / depth
	for tu := 0; tu < numTuples; tu++ {
		base := 0
		for a := 0; a < depth; a++ {
			c := int(idx[tu*depth+a])
			if c < 0 || c >= values.shape.Dimensions[a] {
				exceptions.Panicf("purego: GatherND index %d out of range for axis %d of %s", c, a, values.shape)
			}
			base += c * valStrides[a]
		}
		copyBlock(out, tu*sliceSize, values, base, sliceSize)
	}
	return out
}

// Gather is not provided by this binding; use GatherND.
func (b *Backend) Gather(values, indices backends.Tensor) backends.Tensor {
	panic(errNotImplementedf("Gather; use GatherND"))
}

// ScatterND is not provided by this binding.
func (b *Backend) ScatterND(indices, values backends.Tensor, shape shapes.Shape) backends.Tensor {
	panic(errNotImplementedf("ScatterND"))
}
