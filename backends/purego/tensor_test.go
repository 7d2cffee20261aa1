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

func TestFromFlat(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(t, shapes.Make(dtypes.Float32, 2, 3), b.Shape(x))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, b.FlatData(x))

	// FlatData returns a copy, not an alias.
	b.FlatData(x).([]float32)[0] = 99
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, b.FlatData(x))

	assert.Panics(t, func() { b.FromFlat([]float32{1, 2, 3}, 2, 2) })
	assert.Panics(t, func() { b.FromFlat(42, 1) })
}

func TestFromFlatEnforcesPrecision(t *testing.T) {
	b := NewWithPrecision(backends.Precision64)
	x := b.FromFlat([]float32{1.5}, 1)
	assert.Equal(t, dtypes.Float64, b.DType(x))
	assert.Equal(t, []float64{1.5}, b.FlatData(x))

	// Integer data is never touched by the precision setting.
	y := b.FromFlat([]int32{7}, 1)
	assert.Equal(t, dtypes.Int32, b.DType(y))
}

func TestScalar(t *testing.T) {
	b := testBackend()
	x := b.Scalar(float32(2.5))
	assert.Equal(t, 0, b.Rank(x))
	assert.Equal(t, []float32{2.5}, b.FlatData(x))

	assert.True(t, b.DType(b.Scalar(3)).IsInt())
	assert.Equal(t, dtypes.Bool, b.DType(b.Scalar(true)))
	assert.Panics(t, func() { b.Scalar("nope") })
}

func TestZerosOnesARange(t *testing.T) {
	b := testBackend()
	z := b.Zeros(shapes.Make(dtypes.Int64, 2, 2))
	assert.Equal(t, []int64{0, 0, 0, 0}, b.FlatData(z))
	assert.Equal(t, []int64{1, 1, 1, 1}, b.FlatData(b.OnesLike(z)))
	assert.Equal(t, []int64{0, 0, 0, 0}, b.FlatData(b.ZerosLike(z)))

	r := b.ARange(0, 5, 1, dtypes.InvalidDType)
	assert.Equal(t, dtypes.Int32, b.DType(r))
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, b.FlatData(r))

	r = b.ARange(5, 0, -2, dtypes.Float32)
	assert.Equal(t, []float32{5, 3, 1}, b.FlatData(r))
}

func TestRandom(t *testing.T) {
	b := NewWithPrecision(backends.Precision32)
	u := b.RandomUniform(shapes.Make(dtypes.Float32, 100))
	require.Equal(t, dtypes.Float32, b.DType(u))
	for _, v := range b.FlatData(u).([]float32) {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
	n := b.RandomNormal(shapes.Make(dtypes.Float32, 10))
	assert.Equal(t, dtypes.Float32, b.DType(n))
}

func TestForeignTensorRejected(t *testing.T) {
	b := testBackend()
	assert.Panics(t, func() { b.Copy("not a tensor") })
	assert.Panics(t, func() { b.Copy(nil) })
}

func TestDispatchUnsupportedDType(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]bool{true, false}, 2)
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, backends.ErrNotImplemented))
	}()
	b.Add(x, x) // no arithmetic kernel for Bool
}
