package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidml/fluidml/types/dtypes"
)

func TestMake(t *testing.T) {
	s := Make(dtypes.Float32, 2, 3, 4)
	assert.Equal(t, dtypes.Float32, s.DType)
	assert.Equal(t, []int{2, 3, 4}, s.Dimensions)
	assert.Equal(t, 3, s.Rank())
	assert.True(t, s.Ok())

	assert.Panics(t, func() { Make(dtypes.Float32, 2, 0) })
	assert.Panics(t, func() { Make(dtypes.Float32, -1) })
}

func TestScalar(t *testing.T) {
	s := Scalar[float64]()
	assert.Equal(t, dtypes.Float64, s.DType)
	assert.True(t, s.IsScalar())
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.Size())

	assert.False(t, Invalid().Ok())
	assert.False(t, Invalid().IsScalar())
}

func TestDim(t *testing.T) {
	s := Make(dtypes.Int32, 5, 7, 11)
	assert.Equal(t, 5, s.Dim(0))
	assert.Equal(t, 11, s.Dim(2))
	assert.Equal(t, 11, s.Dim(-1))
	assert.Equal(t, 5, s.Dim(-3))
	assert.Panics(t, func() { s.Dim(3) })
	assert.Panics(t, func() { s.Dim(-4) })
}

func TestSizeAndMemory(t *testing.T) {
	s := Make(dtypes.Float64, 2, 3)
	assert.Equal(t, 6, s.Size())
	assert.Equal(t, uintptr(48), s.Memory())
	assert.Equal(t, 1, Scalar[int32]().Size())
}

func TestStrides(t *testing.T) {
	s := Make(dtypes.Float32, 2, 3, 4)
	assert.Equal(t, []int{12, 4, 1}, s.Strides())
	assert.Empty(t, Scalar[float32]().Strides())
}

func TestEqual(t *testing.T) {
	a := Make(dtypes.Float32, 2, 3)
	b := Make(dtypes.Float32, 2, 3)
	c := Make(dtypes.Float64, 2, 3)
	d := Make(dtypes.Float32, 3, 2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.True(t, a.EqualDimensions(c))
	assert.False(t, a.EqualDimensions(d))
}

func TestCloneIsIndependent(t *testing.T) {
	a := Make(dtypes.Float32, 2, 3)
	b := a.Clone()
	require.True(t, a.Equal(b))
	b.Dimensions[0] = 99
	assert.Equal(t, 2, a.Dimensions[0])
}

func TestWithDType(t *testing.T) {
	a := Make(dtypes.Float32, 4)
	b := a.WithDType(dtypes.Complex64)
	assert.Equal(t, dtypes.Complex64, b.DType)
	assert.Equal(t, dtypes.Float32, a.DType)
	assert.True(t, a.EqualDimensions(b))
}

func TestString(t *testing.T) {
	assert.Equal(t, "(Float32)[2 3]", Make(dtypes.Float32, 2, 3).String())
	assert.Equal(t, "(Int64)", Scalar[int64]().String())
}

func TestAssertRank(t *testing.T) {
	s := Make(dtypes.Float32, 2, 3)
	assert.NotPanics(t, func() { s.AssertRank(2) })
	assert.Panics(t, func() { s.AssertRank(3) })
}
