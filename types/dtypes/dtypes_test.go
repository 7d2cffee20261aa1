package dtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/x448/float16"
)

func TestFromName(t *testing.T) {
	assert.Equal(t, Float32, FromName("Float32"))
	assert.Equal(t, Int64, FromName("Int64"))
	assert.Panics(t, func() { FromName("NoSuchType") })
}

func TestStringRoundTrip(t *testing.T) {
	for _, dtype := range []DType{Bool, Int8, Int16, Int32, Int64, Uint8, Float16, Float32, Float64, Complex64, Complex128} {
		assert.Equal(t, dtype, FromName(dtype.String()), "dtype %s", dtype)
	}
}

func TestSizeAndMemory(t *testing.T) {
	assert.Equal(t, 1, Bool.Size())
	assert.Equal(t, 2, Float16.Size())
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Complex64.Size())
	assert.Equal(t, 16, Complex128.Size())
	assert.Equal(t, uintptr(8), Float64.Memory())
	assert.Equal(t, 16, Float16.Bits())
}

func TestKinds(t *testing.T) {
	assert.True(t, Int16.IsInt())
	assert.False(t, Int16.IsFloat())
	assert.True(t, Float16.IsFloat())
	assert.True(t, Complex128.IsComplex())
	assert.Equal(t, KindBool, Bool.Kind())
	assert.False(t, InvalidDType.IsSupported())
}

func TestRealComplexPairs(t *testing.T) {
	assert.Equal(t, Float32, Complex64.RealDType())
	assert.Equal(t, Float64, Complex128.RealDType())
	assert.Equal(t, Complex64, Float32.ComplexDType())
	assert.Equal(t, Complex128, Float64.ComplexDType())
	// Float16 has no complex counterpart; the narrowest is used.
	assert.Equal(t, Complex64, Float16.ComplexDType())
}

func TestGoTypeMapping(t *testing.T) {
	assert.Equal(t, Float32, FromAny(float32(0)))
	assert.Equal(t, Float16, FromAny(float16.Float16(0)))
	assert.Equal(t, InvalidDType, FromAny("string"))
	assert.Equal(t, Int32, FromGenericsType[int32]())
	for _, dtype := range []DType{Bool, Int32, Float64, Complex64} {
		assert.Equal(t, dtype, FromGoType(dtype.GoType()))
	}
}
