package purego

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
)

func TestCast(t *testing.T) {
	b := testBackend()
	x := b.FromFlat([]float64{1.9, -2.9, 0}, 3)

	assert.Equal(t, []int32{1, -2, 0}, b.FlatData(b.Cast(x, dtypes.Int32)))
	assert.Equal(t, []bool{true, true, false}, b.FlatData(b.Cast(x, dtypes.Bool)))
	assert.Equal(t, []float32{1.9, -2.9, 0}, b.FlatData(b.Cast(x, dtypes.Float32)))

	// Same-dtype cast is a no-op.
	assert.Equal(t, x, b.Cast(x, dtypes.Float64))
}

func TestCastIntExactness(t *testing.T) {
	b := testBackend()
	// 2^53+1 is not representable in float64; the int-to-int carrier must not
	// round it before narrowing. Narrowing wraps like a Go conversion.
	big := int64(1<<53 + 1)
	x := b.FromFlat([]int64{big}, 1)
	assert.Equal(t, []uint8{1}, b.FlatData(b.Cast(x, dtypes.Uint8)))

	y := b.FromFlat([]int32{300}, 1)
	assert.Equal(t, []uint8{44}, b.FlatData(b.Cast(y, dtypes.Uint8)))
}

func TestToFloat(t *testing.T) {
	unset := testBackend()
	// No fixed precision: floats keep their width.
	x64 := unset.FromFlat([]float64{1}, 1)
	assert.Equal(t, dtypes.Float64, unset.DType(unset.ToFloat(x64)))
	// Non-floats go to the default Float32.
	xi := unset.FromFlat([]int64{1}, 1)
	assert.Equal(t, dtypes.Float32, unset.DType(unset.ToFloat(xi)))

	fixed := NewWithPrecision(backends.Precision64)
	x32 := fixed.FromFlat([]int32{1}, 1)
	assert.Equal(t, dtypes.Float64, fixed.DType(fixed.ToFloat(x32)))
}

func TestToComplexRealImag(t *testing.T) {
	b := testBackend()
	re := b.FromFlat([]float32{1, 2}, 2)
	im := b.FromFlat([]float32{3, 4}, 2)

	c := b.ToComplex(re, im)
	assert.Equal(t, dtypes.Complex64, b.DType(c))
	assert.Equal(t, []complex64{1 + 3i, 2 + 4i}, b.FlatData(c))

	assert.Equal(t, []float32{1, 2}, b.FlatData(b.Real(c)))
	assert.Equal(t, []float32{3, 4}, b.FlatData(b.Imag(c)))

	// Nil imaginary part means zero.
	c0 := b.ToComplex(re, nil)
	assert.Equal(t, []complex64{1, 2}, b.FlatData(c0))

	// Already-complex input passes through.
	assert.Equal(t, c, b.ToComplex(c, nil))
	assert.Panics(t, func() { b.ToComplex(c, im) })

	// Real/Imag of non-complex tensors.
	assert.Equal(t, []float32{1, 2}, b.FlatData(b.Real(re)))
	assert.Equal(t, []float32{0, 0}, b.FlatData(b.Imag(re)))
}

func TestToComplexPrecision(t *testing.T) {
	b := NewWithPrecision(backends.Precision64)
	re := b.FromFlat([]float64{1}, 1)
	assert.Equal(t, dtypes.Complex128, b.DType(b.ToComplex(re, nil)))
}
