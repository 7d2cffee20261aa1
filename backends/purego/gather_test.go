package purego

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
)

func TestGatherND(t *testing.T) {
	b := testBackend()
	values := b.FromFlat([]float32{1, 2, 3, 4}, 2, 2)
	indices := b.FromFlat([]int32{1, 1, 0, 0}, 2, 2)
	got := b.GatherND(values, indices, 0)
	assert.Equal(t, []int{2}, b.Shape(got).Dimensions)
	assert.Equal(t, []float32{4, 1}, b.FlatData(got))
}

func TestGatherNDPartialIndex(t *testing.T) {
	b := testBackend()
	// Tuples shorter than the rank gather whole sub-tensors.
	values := b.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	indices := b.FromFlat([]int32{2, 0}, 2, 1)
	got := b.GatherND(values, indices, 0)
	assert.Equal(t, []int{2, 2}, b.Shape(got).Dimensions)
	assert.Equal(t, []float32{5, 6, 1, 2}, b.FlatData(got))
}

func TestGatherNDBatched(t *testing.T) {
	b := testBackend()
	values := b.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	indices := b.FromFlat([]int32{2, 0}, 2, 1, 1)
	got := b.GatherND(values, indices, 1)
	assert.Equal(t, []int{2, 1}, b.Shape(got).Dimensions)
	assert.Equal(t, []float32{3, 4}, b.FlatData(got))
}

func TestGatherNDDeepBatchingUnsupported(t *testing.T) {
	b := testBackend()
	values := b.FromFlat([]float32{1, 2, 3, 4}, 2, 2)
	indices := b.FromFlat([]int32{0, 0}, 2, 1, 1)
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, backends.ErrNotImplemented))
	}()
	b.GatherND(values, indices, 2)
}

func TestGatherNDOutOfRange(t *testing.T) {
	b := testBackend()
	values := b.FromFlat([]float32{1, 2}, 2)
	indices := b.FromFlat([]int32{5}, 1, 1)
	assert.Panics(t, func() { b.GatherND(values, indices, 0) })
}

func TestSparseMatMul(t *testing.T) {
	b := testBackend()
	// A = [[1 0 0], [0 0 2]]
	indices := b.FromFlat([]int32{0, 0, 1, 2}, 2, 2)
	values := b.FromFlat([]float32{1, 2}, 2)
	a := b.SparseCOO(indices, values, shapes.Make(dtypes.Float32, 2, 3))
	assert.Equal(t, shapes.Make(dtypes.Float32, 2, 3), b.Shape(a))
	assert.Equal(t, 2, a.(*Sparse).NumNonZero())

	rhs := b.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	got := b.MatMul(a, rhs)
	assert.Equal(t, []int{2, 2}, b.Shape(got).Dimensions)
	// Each batch row i of the result is A * rhs[i].
	assert.Equal(t, []float32{1, 6, 4, 12}, b.FlatData(got))
}

func TestDenseMatMulUnsupported(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float32{1, 2, 3, 4}, 2, 2)
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, backends.ErrNotImplemented))
	}()
	b.MatMul(x, x)
}

func TestSparseRejectedByDenseOps(t *testing.T) {
	b := testBackend()
	indices := b.FromFlat([]int32{0, 0}, 1, 2)
	values := b.FromFlat([]float32{1}, 1)
	a := b.SparseCOO(indices, values, shapes.Make(dtypes.Float32, 2, 2))
	assert.Panics(t, func() { b.Add(a, a) })
}

func TestDot(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float32{1, 2, 3, 4}, 2, 2)
	y := b.FromFlat([]float32{5, 6, 7, 8}, 2, 2)

	got := b.Dot(x, y, 1) // ordinary matrix product
	assert.Equal(t, []int{2, 2}, b.Shape(got).Dimensions)
	assert.Equal(t, []float32{19, 22, 43, 50}, b.FlatData(got))

	full := b.Dot(x, y, 2) // full contraction to a scalar
	assert.Equal(t, 0, b.Rank(full))
	assert.Equal(t, []float32{70}, b.FlatData(full))

	v := b.FromFlat([]float32{1, 1}, 2)
	got = b.Dot(x, v, 1)
	assert.Equal(t, []int{2}, b.Shape(got).Dimensions)
	assert.Equal(t, []float32{3, 7}, b.FlatData(got))

	bad := b.FromFlat([]float32{1, 2, 3}, 3)
	assert.Panics(t, func() { b.Dot(x, bad, 1) })
}

func TestWhileLoop(t *testing.T) {
	b := testBackend()
	counter := func(vars []backends.Tensor) int32 {
		return b.FlatData(vars[0]).([]int32)[0]
	}
	cond := func(vars []backends.Tensor) bool { return counter(vars) < 10 }
	body := func(vars []backends.Tensor) []backends.Tensor {
		return []backends.Tensor{b.Add(vars[0], b.Scalar(int32(1)))}
	}
	start := []backends.Tensor{b.Scalar(int32(0))}

	got := b.WhileLoop(cond, body, start, -1)
	assert.Equal(t, int32(10), counter(got))

	// maxIterations caps the loop before cond turns false.
	got = b.WhileLoop(cond, body, start, 3)
	assert.Equal(t, int32(3), counter(got))

	// The input slice is never mutated.
	assert.Equal(t, int32(0), counter(start))
}
