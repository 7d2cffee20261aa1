package purego

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidml/fluidml/types/dtypes"
)

func TestBinaryBroadcast(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	row := b.FromFlat([]float32{10, 20, 30}, 3)
	col := b.FromFlat([]float32{100, 200}, 2, 1)

	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, b.FlatData(b.Add(x, row)))
	assert.Equal(t, []float32{101, 102, 103, 204, 205, 206}, b.FlatData(b.Add(x, col)))
	assert.Equal(t, []float32{9, 18, 27, 6, 15, 24}, b.FlatData(b.Sub(row, x)))

	// Scalar broadcasts against anything.
	assert.Equal(t, []float32{2, 4, 6, 8, 10, 12}, b.FlatData(b.Mul(x, b.Scalar(float32(2)))))

	assert.Panics(t, func() { b.Add(row, col2x3MismatchTensor(b)) })
}

func col2x3MismatchTensor(b *Backend) *Tensor {
	return tensorOf(b.FromFlat([]float32{1, 2}, 2))
}

func TestBinaryMixedDTypes(t *testing.T) {
	b := testBackend()
	i := b.FromFlat([]int32{1, 2}, 2)
	f := b.FromFlat([]float32{0.5, 0.5}, 2)
	sum := b.Add(i, f)
	assert.Equal(t, dtypes.Float32, b.DType(sum))
	assert.Equal(t, []float32{1.5, 2.5}, b.FlatData(sum))
}

func TestDivNoNaN(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{1, 2, 3}, 3)
	y := b.FromFlat([]float64{2, 0, 3}, 3)
	assert.Equal(t, []float64{0.5, 0, 1}, b.FlatData(b.DivNoNaN(x, y)))
}

func TestPowMinimumMaximumClip(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{1, 2, 3}, 3)
	assert.Equal(t, []float64{1, 4, 9}, b.FlatData(b.Pow(x, b.Scalar(float64(2)))))
	assert.Equal(t, []float64{1, 2, 2}, b.FlatData(b.Minimum(x, b.Scalar(float64(2)))))
	assert.Equal(t, []float64{2, 2, 3}, b.FlatData(b.Maximum(x, b.Scalar(float64(2)))))
	clipped := b.Clip(x, b.Scalar(float64(1.5)), b.Scalar(float64(2.5)))
	assert.Equal(t, []float64{1.5, 2, 2.5}, b.FlatData(clipped))
}

func TestCompareAndWhere(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float32{1, 2, 3}, 3)
	y := b.FromFlat([]float32{2, 2, 2}, 3)

	assert.Equal(t, []bool{false, true, false}, b.FlatData(b.Equal(x, y)))
	assert.Equal(t, []bool{false, false, true}, b.FlatData(b.Greater(x, y)))
	assert.Equal(t, []bool{true, false, false}, b.FlatData(b.Less(x, y)))

	sel := b.Where(b.Greater(x, y), x, b.Scalar(float32(0)))
	assert.Equal(t, []float32{0, 0, 3}, b.FlatData(sel))

	assert.Panics(t, func() { b.Where(x, x, y) }) // condition must be Bool
}

func TestComplexArithmetic(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]complex64{1 + 2i, 3i}, 2)
	y := b.FromFlat([]complex64{1 - 2i, 2}, 2)
	assert.Equal(t, []complex64{2, 2 + 3i}, b.FlatData(b.Add(x, y)))
	assert.Equal(t, []complex64{5, 6i}, b.FlatData(b.Mul(x, y)))
	// Complex values have no ordering.
	assert.Panics(t, func() { b.Greater(x, y) })
}

func TestUnaryOps(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{-1.5, 0, 2.5}, 3)

	assert.Equal(t, []float64{1.5, 0, -2.5}, b.FlatData(b.Neg(x)))
	assert.Equal(t, []float64{1.5, 0, 2.5}, b.FlatData(b.Abs(x)))
	assert.Equal(t, []float64{-1, 0, 1}, b.FlatData(b.Sign(x)))
	assert.Equal(t, []float64{-2, 0, 2}, b.FlatData(b.Floor(x)))
	assert.Equal(t, []float64{-1, 0, 3}, b.FlatData(b.Ceil(x)))
	assert.Equal(t, []float64{-2, 0, 3}, b.FlatData(b.Round(x)))

	// Round/Ceil/Floor are the identity on integers.
	i := b.FromFlat([]int32{-3, 7}, 2)
	assert.Equal(t, []int32{-3, 7}, b.FlatData(b.Round(i)))
	assert.Equal(t, []int32{3, 7}, b.FlatData(b.Abs(i)))
	assert.Equal(t, []int32{-1, 1}, b.FlatData(b.Sign(i)))
}

func TestTranscendentalPromotesInts(t *testing.T) {
	b := testBackend()
	x := b.Sqrt(b.FromFlat([]int32{4, 9}, 2))
	assert.Equal(t, dtypes.Float32, b.DType(x))
	assert.Equal(t, []float32{2, 3}, b.FlatData(x))

	e := b.FlatData(b.Exp(b.FromFlat([]float64{0, 1}, 2))).([]float64)
	assert.InDelta(t, 1, e[0], 1e-12)
	assert.InDelta(t, math.E, e[1], 1e-12)
}

func TestAbsComplex(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]complex64{3 + 4i}, 1)
	a := b.Abs(x)
	assert.Equal(t, dtypes.Float32, b.DType(a))
	assert.Equal(t, []float32{5}, b.FlatData(a))
}

func TestIsFinite(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{1, math.Inf(1), math.NaN()}, 3)
	assert.Equal(t, []bool{true, false, false}, b.FlatData(b.IsFinite(x)))
	i := b.FromFlat([]int32{1, 2}, 2)
	assert.Equal(t, []bool{true, true}, b.FlatData(b.IsFinite(i)))
}

func TestReductions(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{1, 2, 3, 4, 5, 6}, 2, 3)

	assert.Equal(t, []float64{21}, b.FlatData(b.Sum(x, nil, false)))
	assert.Equal(t, []int{}, b.Shape(b.Sum(x, nil, false)).Dimensions)
	assert.Equal(t, []float64{5, 7, 9}, b.FlatData(b.Sum(x, []int{0}, false)))
	assert.Equal(t, []float64{6, 15}, b.FlatData(b.Sum(x, []int{1}, false)))
	assert.Equal(t, []int{2, 1}, b.Shape(b.Sum(x, []int{1}, true)).Dimensions)
	assert.Equal(t, []float64{6, 15}, b.FlatData(b.Sum(x, []int{-1}, false)))

	assert.Equal(t, []float64{6, 120}, b.FlatData(b.Prod(x, []int{1}, false)))
	assert.Equal(t, []float64{3, 6}, b.FlatData(b.Max(x, []int{1}, false)))
	assert.Equal(t, []float64{1, 4}, b.FlatData(b.Min(x, []int{1}, false)))
	assert.Equal(t, []float64{2, 5}, b.FlatData(b.Mean(x, []int{1}, false)))

	assert.Panics(t, func() { b.Sum(x, []int{2}, false) })
	assert.Panics(t, func() { b.Sum(x, []int{0, 0}, false) })
}

func TestMeanPromotesInts(t *testing.T) {
	b := testBackend()
	m := b.Mean(b.FromFlat([]int32{1, 2}, 2), nil, false)
	assert.Equal(t, dtypes.Float32, b.DType(m))
	assert.Equal(t, []float32{1.5}, b.FlatData(m))
}

func TestStd(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	std := b.FlatData(b.Std(x, nil, false)).([]float64)
	assert.InDelta(t, 2, std[0], 1e-12) // population std of the classic example
}

func TestAnyAll(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]bool{true, false, true, true}, 2, 2)
	assert.Equal(t, []bool{true}, b.FlatData(b.Any(x, nil, false)))
	assert.Equal(t, []bool{false}, b.FlatData(b.All(x, nil, false)))
	assert.Equal(t, []bool{false, true}, b.FlatData(b.All(x, []int{1}, false)))

	// Non-bool input is tested against zero.
	i := b.FromFlat([]int32{0, 3}, 2)
	assert.Equal(t, []bool{true}, b.FlatData(b.Any(i, nil, false)))
	assert.Equal(t, []bool{false}, b.FlatData(b.All(i, nil, false)))
}
