package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
)

// Sparse is a rank-2 tensor in COO form: nnz (row, col) coordinates plus a
// dense (nnz,) value tensor. Sparse tensors only participate in MatMul; dense
// operations reject them.
type Sparse struct {
	shape      shapes.Shape
	rows, cols []int
	values     *Tensor
}

// Shape of the sparse tensor.
func (s *Sparse) Shape() shapes.Shape { return s.shape }

// NumNonZero returns the number of stored entries.
func (s *Sparse) NumNonZero() int { return len(s.rows) }

// SparseCOO builds a rank-2 sparse tensor from (nnz, 2) integer coordinates and
// (nnz,) values. Values are cast to the dtype of shape.
func (b *Backend) SparseCOO(indices, values backends.Tensor, shape shapes.Shape) backends.Tensor {
	if shape.Rank() != 2 {
		exceptions.Panicf("purego: SparseCOO shape must be rank 2, got %s", shape)
	}
	idx := tensorOf(indices)
	vals := tensorOf(values)
	if idx.shape.Rank() != 2 || idx.shape.Dimensions[1] != 2 {
		exceptions.Panicf("purego: SparseCOO indices must be (nnz, 2), got %s", idx.shape)
	}
	nnz := idx.shape.Dimensions[0]
	if vals.shape.Rank() != 1 || vals.shape.Dimensions[0] != nnz {
		exceptions.Panicf("purego: SparseCOO values must be (%d,), got %s", nnz, vals.shape)
	}
	flat := tensorOf(b.Cast(idx, dtypes.Int64)).flat.([]int64)
	rows := make([]int, nnz)
	cols := make([]int, nnz)
	for i := 0; i < nnz; i++ {
		r, c := int(flat[i*2]), int(flat[i*2+1])
		if r < 0 || r >= shape.Dimensions[0] || c < 0 || c >= shape.Dimensions[1] {
			exceptions.Panicf("purego: SparseCOO coordinate (%d, %d) out of range for %s", r, c, shape)
		}
		rows[i] = r
		cols[i] = c
	}
	return &Sparse{
		shape:  shape.Clone(),
		rows:   rows,
		cols:   cols,
		values: tensorOf(b.Cast(vals, shape.DType)),
	}
}

// MatMul multiplies a sparse (m, n) left operand by a dense (batch, n) right
// operand, producing (batch, m): out[i] = A · rhs[i]. A dense left operand is
// not supported.
func (b *Backend) MatMul(a, c backends.Tensor) backends.Tensor {
	sp, ok := a.(*Sparse)
	if !ok {
		panic(errNotImplementedf("MatMul with a dense left operand; use Dot"))
	}
	rhs := tensorOf(c)
	if rhs.shape.Rank() != 2 {
		exceptions.Panicf("purego: MatMul right operand must be (batch, n), got %s", rhs.shape)
	}
	m, n := sp.shape.Dimensions[0], sp.shape.Dimensions[1]
	batch := rhs.shape.Dimensions[0]
	if rhs.shape.Dimensions[1] != n {
		exceptions.Panicf("purego: MatMul dimensions mismatch: %s vs %s", sp.shape, rhs.shape)
	}
	dtype := b.CombineTypes(sp.shape.DType, rhs.shape.DType)
	vals := toComplex128(sp.values)
	data := toComplex128(rhs)
	out := make([]complex128, batch*m)
	for k, v := range vals {
		r, col := sp.rows[k], sp.cols[k]
		for bi := 0; bi < batch; bi++ {
			out[bi*m+r] += v * data[bi*n+col]
		}
	}
	return fromComplex128(out, shapes.Make(dtype, batch, m))
}

// Dot contracts the last `axes` axes of a with the first `axes` axes of c.
// With axes == 1 and matrices this is the ordinary matrix product.
func (b *Backend) Dot(a, c backends.Tensor, axes int) backends.Tensor {
	cast := b.AutoCast(a, c)
	lhs, rhs := tensorOf(cast[0]), tensorOf(cast[1])
	if axes < 0 || axes > lhs.shape.Rank() || axes > rhs.shape.Rank() {
		exceptions.Panicf("purego: Dot over %d axes of %s and %s", axes, lhs.shape, rhs.shape)
	}
	contracted := 1
	for i := 0; i < axes; i++ {
		la := lhs.shape.Dimensions[lhs.shape.Rank()-axes+i]
		ra := rhs.shape.Dimensions[i]
		if la != ra {
			exceptions.Panicf("purego: Dot contraction dimensions mismatch: %s vs %s over %d axes",
				lhs.shape, rhs.shape, axes)
		}
		contracted *= la
	}
	outDims := make([]int, 0, lhs.shape.Rank()+rhs.shape.Rank()-2*axes)
	outDims = append(outDims, lhs.shape.Dimensions[:lhs.shape.Rank()-axes]...)
	outDims = append(outDims, rhs.shape.Dimensions[axes:]...)
	m, n := 1, 1
	for _, dim := range lhs.shape.Dimensions[:lhs.shape.Rank()-axes] {
		m *= dim
	}
	for _, dim := range rhs.shape.Dimensions[axes:] {
		n *= dim
	}
	lData := toComplex128(lhs)
	rData := toComplex128(rhs)
	out := make([]complex128, m*n)
	for i := 0; i < m; i++ {
		for k := 0; k < contracted; k++ {
			v := lData[i*contracted+k]
			if v == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i*n+j] += v * rData[k*n+j]
			}
		}
	}
	return fromComplex128(out, shapes.Shape{DType: lhs.shape.DType, Dimensions: outDims})
}
