package purego

import (
	"math"
	"math/cmplx"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

type unaryOp int

const (
	unaryNeg unaryOp = iota
	unaryAbs
	unarySign
	unaryRound
	unaryCeil
	unaryFloor
	unarySqrt
	unaryExp
	unaryLog
	unarySin
	unaryCos
)

var unaryOpNames = [...]string{"Neg", "Abs", "Sign", "Round", "Ceil", "Floor", "Sqrt", "Exp", "Log", "Sin", "Cos"}

// transcendental ops promote integer inputs to the float dtype first.
func (op unaryOp) transcendental() bool {
	return op >= unarySqrt
}

var dispatchUnary = newDispatcher("unaryOps")

func execUnaryInt[T podInteger](params ...any) any {
	op := params[0].(unaryOp)
	src := params[1].([]T)
	out := make([]T, len(src))
	switch op {
	case unaryNeg:
		for i, v := range src {
			out[i] = -v
		}
	case unaryAbs:
		for i, v := range src {
			if v < 0 {
				v = -v
			}
			out[i] = v
		}
	case unarySign:
		for i, v := range src {
			switch {
			case v > 0:
				out[i] = 1
			case v < 0:
				out[i] = T(0) - 1
			}
		}
	case unaryRound, unaryCeil, unaryFloor:
		copy(out, src)
	default:
		exceptions.Panicf("purego: unary op %s reached integer kernel", unaryOpNames[op])
	}
	return out
}

func unaryFuncFloat(op unaryOp) func(v float64) float64 {
	switch op {
	case unaryNeg:
		return func(v float64) float64 { return -v }
	case unaryAbs:
		return math.Abs
	case unarySign:
		return func(v float64) float64 {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			}
			return v // keeps ±0 and NaN
		}
	case unaryRound:
		return math.Round
	case unaryCeil:
		return math.Ceil
	case unaryFloor:
		return math.Floor
	case unarySqrt:
		return math.Sqrt
	case unaryExp:
		return math.Exp
	case unaryLog:
		return math.Log
	case unarySin:
		return math.Sin
	case unaryCos:
		return math.Cos
	}
	exceptions.Panicf("purego: unknown unary op %d", op)
	return nil
}

func execUnaryFloat[T float32 | float64](params ...any) any {
	op := params[0].(unaryOp)
	src := params[1].([]T)
	fn := unaryFuncFloat(op)
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(fn(float64(v)))
	}
	return out
}

func execUnaryFloat16(params ...any) any {
	op := params[0].(unaryOp)
	src := params[1].([]float16.Float16)
	fn := unaryFuncFloat(op)
	out := make([]float16.Float16, len(src))
	for i, v := range src {
		out[i] = float16.Fromfloat32(float32(fn(float64(v.Float32()))))
	}
	return out
}

func execUnaryComplex[T podComplex](params ...any) any {
	op := params[0].(unaryOp)
	src := params[1].([]T)
	out := make([]T, len(src))
	var fn func(v complex128) complex128
	switch op {
	case unaryNeg:
		fn = func(v complex128) complex128 { return -v }
	case unarySign:
		fn = func(v complex128) complex128 {
			if v == 0 {
				return 0
			}
			return v / complex(cmplx.Abs(v), 0)
		}
	case unarySqrt:
		fn = cmplx.Sqrt
	case unaryExp:
		fn = cmplx.Exp
	case unaryLog:
		fn = cmplx.Log
	case unarySin:
		fn = cmplx.Sin
	case unaryCos:
		fn = cmplx.Cos
	default:
		panic(errNotImplementedf("unary op %s for complex dtypes", unaryOpNames[op]))
	}
	for i, v := range src {
		out[i] = T(fn(complex128(v)))
	}
	return out
}

func init() {
	dispatchUnary.register(dtypes.Int8, execUnaryInt[int8])
	dispatchUnary.register(dtypes.Int16, execUnaryInt[int16])
	dispatchUnary.register(dtypes.Int32, execUnaryInt[int32])
	dispatchUnary.register(dtypes.Int64, execUnaryInt[int64])
	dispatchUnary.register(dtypes.Uint8, execUnaryInt[uint8])
	dispatchUnary.register(dtypes.Float16, execUnaryFloat16)
	dispatchUnary.register(dtypes.Float32, execUnaryFloat[float32])
	dispatchUnary.register(dtypes.Float64, execUnaryFloat[float64])
	dispatchUnary.register(dtypes.Complex64, execUnaryComplex[complex64])
	dispatchUnary.register(dtypes.Complex128, execUnaryComplex[complex128])
}

func (b *Backend) unary(op unaryOp, t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	if op.transcendental() && !tt.shape.DType.IsFloat() && !tt.shape.DType.IsComplex() {
		tt = tensorOf(b.ToFloat(tt))
	}
	flat := dispatchUnary.dispatch(tt.shape.DType, op, tt.flat)
	return &Tensor{shape: tt.shape.Clone(), flat: flat}
}

func (b *Backend) Neg(t backends.Tensor) backends.Tensor { return b.unary(unaryNeg, t) }

// Abs returns the element-wise absolute value. For complex tensors the result
// has the matching real dtype.
func (b *Backend) Abs(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	if tt.shape.DType.IsComplex() {
		data := toComplex128(tt)
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = cmplx.Abs(v)
		}
		return fromFloat64(out, tt.shape.WithDType(tt.shape.DType.RealDType()))
	}
	return b.unary(unaryAbs, tt)
}

func (b *Backend) Sign(t backends.Tensor) backends.Tensor  { return b.unary(unarySign, t) }
func (b *Backend) Round(t backends.Tensor) backends.Tensor { return b.unary(unaryRound, t) }
func (b *Backend) Ceil(t backends.Tensor) backends.Tensor  { return b.unary(unaryCeil, t) }
func (b *Backend) Floor(t backends.Tensor) backends.Tensor { return b.unary(unaryFloor, t) }
func (b *Backend) Sqrt(t backends.Tensor) backends.Tensor  { return b.unary(unarySqrt, t) }
func (b *Backend) Exp(t backends.Tensor) backends.Tensor   { return b.unary(unaryExp, t) }
func (b *Backend) Log(t backends.Tensor) backends.Tensor   { return b.unary(unaryLog, t) }
func (b *Backend) Sin(t backends.Tensor) backends.Tensor   { return b.unary(unarySin, t) }
func (b *Backend) Cos(t backends.Tensor) backends.Tensor   { return b.unary(unaryCos, t) }

var dispatchIsFinite = newDispatcher("isFinite")

func execIsFiniteTrue[T bool | int8 | int16 | int32 | int64 | uint8](params ...any) any {
	src := params[0].([]T)
	out := make([]bool, len(src))
	for i := range out {
		out[i] = true
	}
	return out
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func execIsFiniteFloat[T float32 | float64](params ...any) any {
	src := params[0].([]T)
	out := make([]bool, len(src))
	for i, v := range src {
		out[i] = finite(float64(v))
	}
	return out
}

func execIsFiniteComplex[T podComplex](params ...any) any {
	src := params[0].([]T)
	out := make([]bool, len(src))
	for i, v := range src {
		c := complex128(v)
		out[i] = finite(real(c)) && finite(imag(c))
	}
	return out
}

func init() {
	dispatchIsFinite.register(dtypes.Bool, execIsFiniteTrue[bool])
	dispatchIsFinite.register(dtypes.Int8, execIsFiniteTrue[int8])
	dispatchIsFinite.register(dtypes.Int16, execIsFiniteTrue[int16])
	dispatchIsFinite.register(dtypes.Int32, execIsFiniteTrue[int32])
	dispatchIsFinite.register(dtypes.Int64, execIsFiniteTrue[int64])
	dispatchIsFinite.register(dtypes.Uint8, execIsFiniteTrue[uint8])
	dispatchIsFinite.register(dtypes.Float16, func(params ...any) any {
		src := params[0].([]float16.Float16)
		out := make([]bool, len(src))
		for i, v := range src {
			out[i] = finite(float64(v.Float32()))
		}
		return out
	})
	dispatchIsFinite.register(dtypes.Float32, execIsFiniteFloat[float32])
	dispatchIsFinite.register(dtypes.Float64, execIsFiniteFloat[float64])
	dispatchIsFinite.register(dtypes.Complex64, execIsFiniteComplex[complex64])
	dispatchIsFinite.register(dtypes.Complex128, execIsFiniteComplex[complex128])
}

// IsFinite reports element-wise whether values are neither infinite nor NaN.
// Boolean and integer tensors are always finite.
func (b *Backend) IsFinite(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	flat := dispatchIsFinite.dispatch(tt.shape.DType, tt.flat)
	return &Tensor{shape: tt.shape.WithDType(dtypes.Bool), flat: flat}
}
