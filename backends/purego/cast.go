package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// Conversions between dtypes go through one of two carriers: int64 when both
// sides are bool/int (exact for every supported width), complex128 otherwise
// (exact for every float and complex width, and for ints up to 2^53).

var (
	dispatchToComplex128   = newDispatcher("toComplex128")
	dispatchFromComplex128 = newDispatcher("fromComplex128")
	dispatchToInt64        = newDispatcher("toInt64")
	dispatchFromInt64      = newDispatcher("fromInt64")
)

type podNumeric interface {
	int8 | int16 | int32 | int64 | uint8 | float32 | float64
}

func execToComplex128Generic[T podNumeric](params ...any) any {
	src := params[0].([]T)
	out := make([]complex128, len(src))
	for i, v := range src {
		out[i] = complex(float64(v), 0)
	}
	return out
}

func execFromComplex128Generic[T podNumeric](params ...any) any {
	src := params[0].([]complex128)
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(real(v))
	}
	return out
}

type podInteger interface {
	int8 | int16 | int32 | int64 | uint8
}

func execToInt64Generic[T podInteger](params ...any) any {
	src := params[0].([]T)
	out := make([]int64, len(src))
	for i, v := range src {
		out[i] = int64(v)
	}
	return out
}

func execFromInt64Generic[T podInteger](params ...any) any {
	src := params[0].([]int64)
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(v)
	}
	return out
}

func init() {
	dispatchToComplex128.register(dtypes.Int8, execToComplex128Generic[int8])
	dispatchToComplex128.register(dtypes.Int16, execToComplex128Generic[int16])
	dispatchToComplex128.register(dtypes.Int32, execToComplex128Generic[int32])
	dispatchToComplex128.register(dtypes.Int64, execToComplex128Generic[int64])
	dispatchToComplex128.register(dtypes.Uint8, execToComplex128Generic[uint8])
	dispatchToComplex128.register(dtypes.Float32, execToComplex128Generic[float32])
	dispatchToComplex128.register(dtypes.Float64, execToComplex128Generic[float64])
	dispatchToComplex128.register(dtypes.Bool, func(params ...any) any {
		src := params[0].([]bool)
		out := make([]complex128, len(src))
		for i, v := range src {
			if v {
				out[i] = 1
			}
		}
		return out
	})
	dispatchToComplex128.register(dtypes.Float16, func(params ...any) any {
		src := params[0].([]float16.Float16)
		out := make([]complex128, len(src))
		for i, v := range src {
			out[i] = complex(float64(v.Float32()), 0)
		}
		return out
	})
	dispatchToComplex128.register(dtypes.Complex64, func(params ...any) any {
		src := params[0].([]complex64)
		out := make([]complex128, len(src))
		for i, v := range src {
			out[i] = complex128(v)
		}
		return out
	})
	dispatchToComplex128.register(dtypes.Complex128, func(params ...any) any {
		src := params[0].([]complex128)
		out := make([]complex128, len(src))
		copy(out, src)
		return out
	})

	dispatchFromComplex128.register(dtypes.Int8, execFromComplex128Generic[int8])
	dispatchFromComplex128.register(dtypes.Int16, execFromComplex128Generic[int16])
	dispatchFromComplex128.register(dtypes.Int32, execFromComplex128Generic[int32])
	dispatchFromComplex128.register(dtypes.Int64, execFromComplex128Generic[int64])
	dispatchFromComplex128.register(dtypes.Uint8, execFromComplex128Generic[uint8])
	dispatchFromComplex128.register(dtypes.Float32, execFromComplex128Generic[float32])
	dispatchFromComplex128.register(dtypes.Float64, execFromComplex128Generic[float64])
	dispatchFromComplex128.register(dtypes.Bool, func(params ...any) any {
		src := params[0].([]complex128)
		out := make([]bool, len(src))
		for i, v := range src {
			out[i] = v != 0
		}
		return out
	})
	dispatchFromComplex128.register(dtypes.Float16, func(params ...any) any {
		src := params[0].([]complex128)
		out := make([]float16.Float16, len(src))
		for i, v := range src {
			out[i] = float16.Fromfloat32(float32(real(v)))
		}
		return out
	})
	dispatchFromComplex128.register(dtypes.Complex64, func(params ...any) any {
		src := params[0].([]complex128)
		out := make([]complex64, len(src))
		for i, v := range src {
			out[i] = complex64(v)
		}
		return out
	})
	dispatchFromComplex128.register(dtypes.Complex128, func(params ...any) any {
		src := params[0].([]complex128)
		out := make([]complex128, len(src))
		copy(out, src)
		return out
	})

	dispatchToInt64.register(dtypes.Int8, execToInt64Generic[int8])
	dispatchToInt64.register(dtypes.Int16, execToInt64Generic[int16])
	dispatchToInt64.register(dtypes.Int32, execToInt64Generic[int32])
	dispatchToInt64.register(dtypes.Int64, execToInt64Generic[int64])
	dispatchToInt64.register(dtypes.Uint8, execToInt64Generic[uint8])
	dispatchToInt64.register(dtypes.Bool, func(params ...any) any {
		src := params[0].([]bool)
		out := make([]int64, len(src))
		for i, v := range src {
			if v {
				out[i] = 1
			}
		}
		return out
	})

	dispatchFromInt64.register(dtypes.Int8, execFromInt64Generic[int8])
	dispatchFromInt64.register(dtypes.Int16, execFromInt64Generic[int16])
	dispatchFromInt64.register(dtypes.Int32, execFromInt64Generic[int32])
	dispatchFromInt64.register(dtypes.Int64, execFromInt64Generic[int64])
	dispatchFromInt64.register(dtypes.Uint8, execFromInt64Generic[uint8])
	dispatchFromInt64.register(dtypes.Bool, func(params ...any) any {
		src := params[0].([]int64)
		out := make([]bool, len(src))
		for i, v := range src {
			out[i] = v != 0
		}
		return out
	})
}

// toComplex128 returns the tensor data as a complex128 slice.
func toComplex128(t *Tensor) []complex128 {
	return dispatchToComplex128.dispatch(t.shape.DType, t.flat).([]complex128)
}

// toFloat64 returns the real part of the tensor data as a float64 slice.
func toFloat64(t *Tensor) []float64 {
	c := toComplex128(t)
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

// fromComplex128 materializes a complex128 slice as a tensor of the given shape.
func fromComplex128(data []complex128, shape shapes.Shape) *Tensor {
	flat := dispatchFromComplex128.dispatch(shape.DType, data)
	return &Tensor{shape: shape.Clone(), flat: flat}
}

// fromFloat64 materializes a float64 slice as a tensor of the given shape.
func fromFloat64(data []float64, shape shapes.Shape) *Tensor {
	c := make([]complex128, len(data))
	for i, v := range data {
		c[i] = complex(v, 0)
	}
	return fromComplex128(c, shape)
}

// Cast converts the tensor to the given dtype. If the dtype already matches,
// the tensor itself is returned (tensors are immutable, sharing is safe).
func (b *Backend) Cast(t backends.Tensor, dtype dtypes.DType) backends.Tensor {
	tt := tensorOf(t)
	from := tt.shape.DType
	if from == dtype {
		return tt
	}
	if !dtype.IsSupported() {
		exceptions.Panicf("purego: Cast to invalid dtype %s", dtype)
	}
	outShape := tt.shape.WithDType(dtype)
	fromIsIntLike := from.Kind() == dtypes.KindBool || from.Kind() == dtypes.KindInt
	toIsIntLike := dtype.Kind() == dtypes.KindBool || dtype.Kind() == dtypes.KindInt
	if fromIsIntLike && toIsIntLike {
		carrier := dispatchToInt64.dispatch(from, tt.flat)
		flat := dispatchFromInt64.dispatch(dtype, carrier)
		return &Tensor{shape: outShape, flat: flat}
	}
	carrier := dispatchToComplex128.dispatch(from, tt.flat)
	flat := dispatchFromComplex128.dispatch(dtype, carrier)
	return &Tensor{shape: outShape, flat: flat}
}

// ToFloat implements backends.Ops: identity for floating-point tensors when no
// fixed precision is configured, otherwise a cast to the canonical float type.
func (b *Backend) ToFloat(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	if !b.precision.IsSet() {
		if tt.shape.DType.IsFloat() {
			return tt
		}
		return b.Cast(tt, dtypes.Float32)
	}
	return b.Cast(tt, b.FloatDType())
}

// ToInt casts the tensor to Int32.
func (b *Backend) ToInt(t backends.Tensor) backends.Tensor {
	return b.Cast(t, dtypes.Int32)
}

// ToComplex combines real and imaginary tensors into a complex one.
func (b *Backend) ToComplex(re, imag backends.Tensor) backends.Tensor {
	reT := tensorOf(re)
	if reT.shape.DType.IsComplex() {
		if imag != nil {
			exceptions.Panicf("purego: ToComplex got a complex real part and a non-nil imaginary part")
		}
		return reT
	}
	if !reT.shape.DType.IsFloat() {
		reT = tensorOf(b.ToFloat(reT))
	}
	outDType := reT.shape.DType.ComplexDType()
	reData := toFloat64(reT)
	out := make([]complex128, len(reData))
	if imag == nil {
		for i, v := range reData {
			out[i] = complex(v, 0)
		}
		return fromComplex128(out, reT.shape.WithDType(outDType))
	}
	imT := tensorOf(imag)
	if !imT.shape.EqualDimensions(reT.shape) {
		exceptions.Panicf("purego: ToComplex real %s and imaginary %s dimensions differ", reT.shape, imT.shape)
	}
	imData := toFloat64(imT)
	for i, v := range reData {
		out[i] = complex(v, imData[i])
	}
	return fromComplex128(out, reT.shape.WithDType(outDType))
}

// Real returns the real part of a complex tensor; non-complex tensors are
// returned unchanged.
func (b *Backend) Real(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	if !tt.shape.DType.IsComplex() {
		return tt
	}
	data := toComplex128(tt)
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = real(v)
	}
	return fromFloat64(out, tt.shape.WithDType(tt.shape.DType.RealDType()))
}

// Imag returns the imaginary part of a complex tensor; for non-complex tensors
// it returns zeros of the same shape.
func (b *Backend) Imag(t backends.Tensor) backends.Tensor {
	tt := tensorOf(t)
	if !tt.shape.DType.IsComplex() {
		return b.ZerosLike(tt)
	}
	data := toComplex128(tt)
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = imag(v)
	}
	return fromFloat64(out, tt.shape.WithDType(tt.shape.DType.RealDType()))
}
