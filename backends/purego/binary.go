package purego

import (
	"math"
	"math/cmplx"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// Binary operations auto-cast their operands to the combined dtype and apply
// NumPy-style broadcasting: ranks are aligned by prepending size-1 axes, and
// each axis must either match or be 1 on one side.

// broadcastDims returns the broadcast dimensions of the operands.
func broadcastDims(operands ...shapes.Shape) []int {
	rank := 0
	for _, s := range operands {
		rank = max(rank, s.Rank())
	}
	dims := make([]int, rank)
	for i := range dims {
		dims[i] = 1
	}
	for _, s := range operands {
		offset := rank - s.Rank()
		for a, dim := range s.Dimensions {
			target := &dims[offset+a]
			if *target == 1 {
				*target = dim
			} else if dim != 1 && dim != *target {
				exceptions.Panicf("purego: cannot broadcast shapes %v together", operands)
			}
		}
	}
	return dims
}

// broadcastIndices maps every flat index of the broadcast result to the flat
// index of the source it reads from.
func broadcastIndices(from shapes.Shape, toDims []int) []int {
	rank := len(toDims)
	offset := rank - from.Rank()
	srcStrides := from.Shape().Strides()
	strides := make([]int, rank)    // 0 for prepended axes
	srcDims := make([]int, rank)
	for i := range srcDims {
		srcDims[i] = 1
	}
	for a, stride := range srcStrides {
		strides[offset+a] = stride
		srcDims[offset+a] = from.Dimensions[a]
	}
	size := 1
	for _, dim := range toDims {
		size *= dim
	}
	indices := make([]int, size)
	coord := make([]int, rank)
	for i := range indices {
		src := 0
		for a, c := range coord {
			if srcDims[a] != 1 {
				src += c * strides[a]
			}
		}
		indices[i] = src
		incrCoord(coord, toDims)
	}
	return indices
}

type binaryOp int

const (
	binaryAdd binaryOp = iota
	binarySub
	binaryMul
	binaryDiv
	binaryDivNoNaN
	binaryPow
	binaryMin
	binaryMax
)

var binaryOpNames = [...]string{"Add", "Sub", "Mul", "Div", "DivNoNaN", "Pow", "Minimum", "Maximum"}

func binaryFuncReal[T podNumeric](op binaryOp) func(a, b T) T {
	switch op {
	case binaryAdd:
		return func(a, b T) T { return a + b }
	case binarySub:
		return func(a, b T) T { return a - b }
	case binaryMul:
		return func(a, b T) T { return a * b }
	case binaryDiv:
		return func(a, b T) T { return a / b }
	case binaryDivNoNaN:
		return func(a, b T) T {
			if b == 0 {
				return 0
			}
			return a / b
		}
	case binaryPow:
		return func(a, b T) T { return T(math.Pow(float64(a), float64(b))) }
	case binaryMin:
		return func(a, b T) T {
			if b < a {
				return b
			}
			return a
		}
	case binaryMax:
		return func(a, b T) T {
			if b > a {
				return b
			}
			return a
		}
	}
	exceptions.Panicf("purego: unknown binary op %d", op)
	return nil
}

type podComplex interface {
	complex64 | complex128
}

func binaryFuncComplex[T podComplex](op binaryOp) func(a, b T) T {
	switch op {
	case binaryAdd:
		return func(a, b T) T { return a + b }
	case binarySub:
		return func(a, b T) T { return a - b }
	case binaryMul:
		return func(a, b T) T { return a * b }
	case binaryDiv:
		return func(a, b T) T { return a / b }
	case binaryDivNoNaN:
		return func(a, b T) T {
			if b == 0 {
				return 0
			}
			return a / b
		}
	case binaryPow:
		return func(a, b T) T { return T(cmplx.Pow(complex128(a), complex128(b))) }
	}
	panic(errNotImplementedf("binary op %s for complex dtypes", binaryOpNames[op]))
}

var dispatchBinary = newDispatcher("binaryOps")

func execBinaryGeneric[T podNumeric](params ...any) any {
	op := params[0].(binaryOp)
	lhs, rhs := params[1].([]T), params[2].([]T)
	lhsIdx, rhsIdx := params[3].([]int), params[4].([]int)
	fn := binaryFuncReal[T](op)
	out := make([]T, len(lhsIdx))
	for i := range out {
		out[i] = fn(lhs[lhsIdx[i]], rhs[rhsIdx[i]])
	}
	return out
}

func execBinaryComplexGeneric[T podComplex](params ...any) any {
	op := params[0].(binaryOp)
	lhs, rhs := params[1].([]T), params[2].([]T)
	lhsIdx, rhsIdx := params[3].([]int), params[4].([]int)
	fn := binaryFuncComplex[T](op)
	out := make([]T, len(lhsIdx))
	for i := range out {
		out[i] = fn(lhs[lhsIdx[i]], rhs[rhsIdx[i]])
	}
	return out
}

// Float16 computes through float32 and converts back.
func execBinaryFloat16(params ...any) any {
	op := params[0].(binaryOp)
	lhs, rhs := params[1].([]float16.Float16), params[2].([]float16.Float16)
	lhsIdx, rhsIdx := params[3].([]int), params[4].([]int)
	fn := binaryFuncReal[float32](op)
	out := make([]float16.Float16, len(lhsIdx))
	for i := range out {
		out[i] = float16.Fromfloat32(fn(lhs[lhsIdx[i]].Float32(), rhs[rhsIdx[i]].Float32()))
	}
	return out
}

func init() {
	dispatchBinary.register(dtypes.Int8, execBinaryGeneric[int8])
	dispatchBinary.register(dtypes.Int16, execBinaryGeneric[int16])
	dispatchBinary.register(dtypes.Int32, execBinaryGeneric[int32])
	dispatchBinary.register(dtypes.Int64, execBinaryGeneric[int64])
	dispatchBinary.register(dtypes.Uint8, execBinaryGeneric[uint8])
	dispatchBinary.register(dtypes.Float16, execBinaryFloat16)
	dispatchBinary.register(dtypes.Float32, execBinaryGeneric[float32])
	dispatchBinary.register(dtypes.Float64, execBinaryGeneric[float64])
	dispatchBinary.register(dtypes.Complex64, execBinaryComplexGeneric[complex64])
	dispatchBinary.register(dtypes.Complex128, execBinaryComplexGeneric[complex128])
}

// binary runs one element-wise binary operation with auto-cast and broadcasting.
func (b *Backend) binary(op binaryOp, a, c backends.Tensor) backends.Tensor {
	cast := b.AutoCast(a, c)
	lhs, rhs := tensorOf(cast[0]), tensorOf(cast[1])
	outDims := broadcastDims(lhs.shape, rhs.shape)
	outShape := shapes.Shape{DType: lhs.shape.DType, Dimensions: outDims}
	lhsIdx := broadcastIndices(lhs.shape, outDims)
	rhsIdx := broadcastIndices(rhs.shape, outDims)
	flat := dispatchBinary.dispatch(lhs.shape.DType, op, lhs.flat, rhs.flat, lhsIdx, rhsIdx)
	return &Tensor{shape: outShape, flat: flat}
}

func (b *Backend) Add(a, c backends.Tensor) backends.Tensor { return b.binary(binaryAdd, a, c) }
func (b *Backend) Sub(a, c backends.Tensor) backends.Tensor { return b.binary(binarySub, a, c) }
func (b *Backend) Mul(a, c backends.Tensor) backends.Tensor { return b.binary(binaryMul, a, c) }
func (b *Backend) Div(a, c backends.Tensor) backends.Tensor { return b.binary(binaryDiv, a, c) }

func (b *Backend) DivNoNaN(a, c backends.Tensor) backends.Tensor {
	return b.binary(binaryDivNoNaN, a, c)
}

func (b *Backend) Pow(a, c backends.Tensor) backends.Tensor { return b.binary(binaryPow, a, c) }

func (b *Backend) Maximum(a, c backends.Tensor) backends.Tensor { return b.binary(binaryMax, a, c) }
func (b *Backend) Minimum(a, c backends.Tensor) backends.Tensor { return b.binary(binaryMin, a, c) }

// Clip limits t to [min, max] element-wise.
func (b *Backend) Clip(t, min, max backends.Tensor) backends.Tensor {
	return b.Maximum(min, b.Minimum(t, max))
}

type compareOp int

const (
	compareEq compareOp = iota
	compareGt
	compareLt
)

var dispatchCompare = newDispatcher("compareOps")

func execCompareGeneric[T podNumeric](params ...any) any {
	op := params[0].(compareOp)
	lhs, rhs := params[1].([]T), params[2].([]T)
	lhsIdx, rhsIdx := params[3].([]int), params[4].([]int)
	out := make([]bool, len(lhsIdx))
	switch op {
	case compareEq:
		for i := range out {
			out[i] = lhs[lhsIdx[i]] == rhs[rhsIdx[i]]
		}
	case compareGt:
		for i := range out {
			out[i] = lhs[lhsIdx[i]] > rhs[rhsIdx[i]]
		}
	case compareLt:
		for i := range out {
			out[i] = lhs[lhsIdx[i]] < rhs[rhsIdx[i]]
		}
	}
	return out
}

func execCompareEqOnly[T bool | complex64 | complex128](params ...any) any {
	op := params[0].(compareOp)
	if op != compareEq {
		panic(errNotImplementedf("ordering comparison for non-ordered dtype"))
	}
	lhs, rhs := params[1].([]T), params[2].([]T)
	lhsIdx, rhsIdx := params[3].([]int), params[4].([]int)
	out := make([]bool, len(lhsIdx))
	for i := range out {
		out[i] = lhs[lhsIdx[i]] == rhs[rhsIdx[i]]
	}
	return out
}

func execCompareFloat16(params ...any) any {
	op := params[0].(compareOp)
	lhs, rhs := params[1].([]float16.Float16), params[2].([]float16.Float16)
	lhsIdx, rhsIdx := params[3].([]int), params[4].([]int)
	out := make([]bool, len(lhsIdx))
	for i := range out {
		a, b := lhs[lhsIdx[i]].Float32(), rhs[rhsIdx[i]].Float32()
		switch op {
		case compareEq:
			out[i] = a == b
		case compareGt:
			out[i] = a > b
		case compareLt:
			out[i] = a < b
		}
	}
	return out
}

func init() {
	dispatchCompare.register(dtypes.Bool, execCompareEqOnly[bool])
	dispatchCompare.register(dtypes.Int8, execCompareGeneric[int8])
	dispatchCompare.register(dtypes.Int16, execCompareGeneric[int16])
	dispatchCompare.register(dtypes.Int32, execCompareGeneric[int32])
	dispatchCompare.register(dtypes.Int64, execCompareGeneric[int64])
	dispatchCompare.register(dtypes.Uint8, execCompareGeneric[uint8])
	dispatchCompare.register(dtypes.Float16, execCompareFloat16)
	dispatchCompare.register(dtypes.Float32, execCompareGeneric[float32])
	dispatchCompare.register(dtypes.Float64, execCompareGeneric[float64])
	dispatchCompare.register(dtypes.Complex64, execCompareEqOnly[complex64])
	dispatchCompare.register(dtypes.Complex128, execCompareEqOnly[complex128])
}

func (b *Backend) compare(op compareOp, a, c backends.Tensor) backends.Tensor {
	cast := b.AutoCast(a, c)
	lhs, rhs := tensorOf(cast[0]), tensorOf(cast[1])
	outDims := broadcastDims(lhs.shape, rhs.shape)
	lhsIdx := broadcastIndices(lhs.shape, outDims)
	rhsIdx := broadcastIndices(rhs.shape, outDims)
	flat := dispatchCompare.dispatch(lhs.shape.DType, op, lhs.flat, rhs.flat, lhsIdx, rhsIdx)
	return &Tensor{shape: shapes.Shape{DType: dtypes.Bool, Dimensions: outDims}, flat: flat}
}

func (b *Backend) Equal(a, c backends.Tensor) backends.Tensor   { return b.compare(compareEq, a, c) }
func (b *Backend) Greater(a, c backends.Tensor) backends.Tensor { return b.compare(compareGt, a, c) }
func (b *Backend) Less(a, c backends.Tensor) backends.Tensor    { return b.compare(compareLt, a, c) }

var dispatchSelect = newDispatcher("select")

func execSelectGeneric[T nativeSupported](params ...any) any {
	cond := params[0].([]bool)
	condIdx := params[1].([]int)
	x, y := params[2].([]T), params[3].([]T)
	xIdx, yIdx := params[4].([]int), params[5].([]int)
	out := make([]T, len(condIdx))
	for i := range out {
		if cond[condIdx[i]] {
			out[i] = x[xIdx[i]]
		} else {
			out[i] = y[yIdx[i]]
		}
	}
	return out
}

func init() {
	dispatchSelect.register(dtypes.Bool, execSelectGeneric[bool])
	dispatchSelect.register(dtypes.Int8, execSelectGeneric[int8])
	dispatchSelect.register(dtypes.Int16, execSelectGeneric[int16])
	dispatchSelect.register(dtypes.Int32, execSelectGeneric[int32])
	dispatchSelect.register(dtypes.Int64, execSelectGeneric[int64])
	dispatchSelect.register(dtypes.Uint8, execSelectGeneric[uint8])
	dispatchSelect.register(dtypes.Float16, execSelectGeneric[float16.Float16])
	dispatchSelect.register(dtypes.Float32, execSelectGeneric[float32])
	dispatchSelect.register(dtypes.Float64, execSelectGeneric[float64])
	dispatchSelect.register(dtypes.Complex64, execSelectGeneric[complex64])
	dispatchSelect.register(dtypes.Complex128, execSelectGeneric[complex128])
}

// Where selects x where cond is true and y otherwise.
func (b *Backend) Where(cond, x, y backends.Tensor) backends.Tensor {
	cc := tensorOf(cond)
	if cc.shape.DType != dtypes.Bool {
		exceptions.Panicf("purego: Where condition must be Bool, got %s", cc.shape)
	}
	cast := b.AutoCast(x, y)
	xx, yy := tensorOf(cast[0]), tensorOf(cast[1])
	outDims := broadcastDims(cc.shape, xx.shape, yy.shape)
	condIdx := broadcastIndices(cc.shape, outDims)
	xIdx := broadcastIndices(xx.shape, outDims)
	yIdx := broadcastIndices(yy.shape, outDims)
	flat := dispatchSelect.dispatch(xx.shape.DType, cc.flat.([]bool), condIdx, xx.flat, yy.flat, xIdx, yIdx)
	return &Tensor{shape: shapes.Shape{DType: xx.shape.DType, Dimensions: outDims}, flat: flat}
}
