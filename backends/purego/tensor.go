package purego

import (
	"math/rand/v2"
	"reflect"
	"strconv"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// Tensor is the engine-native tensor of the purego backend: a shape plus the
// flat row-major data, always a []T of the dtype's native Go type.
//
// Tensors are functional: operations return newly allocated tensors and never
// write to their inputs.
type Tensor struct {
	shape shapes.Shape
	flat  any
}

// Shape of the tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// newTensor allocates a zero-filled tensor of the given shape.
func newTensor(shape shapes.Shape) *Tensor {
	size := shape.Size()
	flat := reflect.MakeSlice(reflect.SliceOf(translateDType(shape.DType)), size, size).Interface()
	return &Tensor{shape: shape, flat: flat}
}

// tensorOf asserts that a handle passed through the abstract interface is a
// dense tensor owned by this binding.
func tensorOf(t backends.Tensor) *Tensor {
	switch v := t.(type) {
	case *Tensor:
		return v
	case *Sparse:
		exceptions.Panicf("purego: operation expects a dense tensor, got sparse %s", v.shape)
	case nil:
		exceptions.Panicf("purego: operation received a nil tensor")
	default:
		exceptions.Panicf("purego: operation received a foreign tensor of type %T", t)
	}
	return nil
}

// flatValue returns the reflect.Value of the flat data, for block copies.
func (t *Tensor) flatValue() reflect.Value { return reflect.ValueOf(t.flat) }

// copyBlock copies n contiguous elements between tensors of the same dtype.
func copyBlock(dst *Tensor, dstOff int, src *Tensor, srcOff, n int) {
	reflect.Copy(dst.flatValue().Slice(dstOff, dstOff+n), src.flatValue().Slice(srcOff, srcOff+n))
}

// copyIndexed copies dst[i] = src[indices[i]] for every element of dst.
// A negative index leaves dst[i] untouched, so pre-filled destinations keep
// their fill value there.
var dispatchCopyIndexed = newDispatcher("copyIndexed")

func execCopyIndexedGeneric[T nativeSupported](params ...any) any {
	src := params[0].([]T)
	dst := params[1].([]T)
	indices := params[2].([]int)
	for i, j := range indices {
		if j < 0 {
			continue
		}
		dst[i] = src[j]
	}
	return nil
}

// copyIndexed materializes a gather of src at the given flat indices into a new
// tensor of the given shape (same dtype as src).
func copyIndexed(src *Tensor, indices []int, shape shapes.Shape) *Tensor {
	out := newTensor(shape)
	dispatchCopyIndexed.dispatch(src.shape.DType, src.flat, out.flat, indices)
	return out
}

// fill sets every element of the tensor to the given value, which must already
// have the tensor's native type.
var dispatchFill = newDispatcher("fill")

func execFillGeneric[T nativeSupported](params ...any) any {
	flat := params[0].([]T)
	value := params[1].(T)
	for i := range flat {
		flat[i] = value
	}
	return nil
}

// nativeSupported enumerates the native element types of this engine.
type nativeSupported interface {
	bool | int8 | int16 | int32 | int64 | uint8 |
		float16.Float16 | float32 | float64 | complex64 | complex128
}

func init() {
	dispatchCopyIndexed.register(dtypes.Bool, execCopyIndexedGeneric[bool])
	dispatchCopyIndexed.register(dtypes.Int8, execCopyIndexedGeneric[int8])
	dispatchCopyIndexed.register(dtypes.Int16, execCopyIndexedGeneric[int16])
	dispatchCopyIndexed.register(dtypes.Int32, execCopyIndexedGeneric[int32])
	dispatchCopyIndexed.register(dtypes.Int64, execCopyIndexedGeneric[int64])
	dispatchCopyIndexed.register(dtypes.Uint8, execCopyIndexedGeneric[uint8])
	dispatchCopyIndexed.register(dtypes.Float16, execCopyIndexedGeneric[float16.Float16])
	dispatchCopyIndexed.register(dtypes.Float32, execCopyIndexedGeneric[float32])
	dispatchCopyIndexed.register(dtypes.Float64, execCopyIndexedGeneric[float64])
	dispatchCopyIndexed.register(dtypes.Complex64, execCopyIndexedGeneric[complex64])
	dispatchCopyIndexed.register(dtypes.Complex128, execCopyIndexedGeneric[complex128])
	dispatchFill.register(dtypes.Bool, execFillGeneric[bool])
	dispatchFill.register(dtypes.Int8, execFillGeneric[int8])
	dispatchFill.register(dtypes.Int16, execFillGeneric[int16])
	dispatchFill.register(dtypes.Int32, execFillGeneric[int32])
	dispatchFill.register(dtypes.Int64, execFillGeneric[int64])
	dispatchFill.register(dtypes.Uint8, execFillGeneric[uint8])
	dispatchFill.register(dtypes.Float16, execFillGeneric[float16.Float16])
	dispatchFill.register(dtypes.Float32, execFillGeneric[float32])
	dispatchFill.register(dtypes.Float64, execFillGeneric[float64])
	dispatchFill.register(dtypes.Complex64, execFillGeneric[complex64])
	dispatchFill.register(dtypes.Complex128, execFillGeneric[complex128])
}

// scalarForDType converts a float64 to the native scalar of the given dtype.
func scalarForDType(dtype dtypes.DType, value float64) any {
	switch dtype {
	case dtypes.Bool:
		return value != 0
	case dtypes.Int8:
		return int8(value)
	case dtypes.Int16:
		return int16(value)
	case dtypes.Int32:
		return int32(value)
	case dtypes.Int64:
		return int64(value)
	case dtypes.Uint8:
		return uint8(value)
	case dtypes.Float16:
		return float16.Fromfloat32(float32(value))
	case dtypes.Float32:
		return float32(value)
	case dtypes.Float64:
		return value
	case dtypes.Complex64:
		return complex64(complex(value, 0))
	case dtypes.Complex128:
		return complex(value, 0)
	}
	exceptions.Panicf("purego: no native scalar for dtype %s", dtype)
	return nil
}

// Shape implements backends.Ops.
func (b *Backend) Shape(t backends.Tensor) shapes.Shape { return shapeOf(t) }

// shapeOf also accepts sparse tensors.
func shapeOf(t backends.Tensor) shapes.Shape {
	if s, ok := t.(*Sparse); ok {
		return s.shape
	}
	return tensorOf(t).shape
}

// DType implements backends.Ops.
func (b *Backend) DType(t backends.Tensor) dtypes.DType { return shapeOf(t).DType }

// Rank implements backends.Ops.
func (b *Backend) Rank(t backends.Tensor) int { return shapeOf(t).Rank() }

// FlatData returns a copy of the tensor's data as a flat Go slice.
func (b *Backend) FlatData(t backends.Tensor) any {
	tt := tensorOf(t)
	return tt.Copy().flat
}

// Copy implements backends.Ops.
func (b *Backend) Copy(t backends.Tensor) backends.Tensor {
	return tensorOf(t).Copy()
}

// Copy returns an independent deep copy of the tensor.
func (t *Tensor) Copy() *Tensor {
	out := newTensor(t.shape.Clone())
	copyBlock(out, 0, t, 0, t.shape.Size())
	return out
}

// FromFlat builds a tensor from a flat Go slice and dimensions.
//
// The element type must be one of the engine's native types ([]int is also
// accepted and stored as the platform int width). Floating-point data is cast
// to the canonical float type if a fixed precision is configured.
func (b *Backend) FromFlat(flat any, dimensions ...int) backends.Tensor {
	value := reflect.ValueOf(flat)
	if value.Kind() != reflect.Slice {
		exceptions.Panicf("purego: FromFlat requires a slice, got %T", flat)
	}
	if ints, ok := flat.([]int); ok {
		flat = widenInts(ints)
		value = reflect.ValueOf(flat)
	}
	dtype := invTranslateDType(value.Type().Elem())
	shape := shapes.Make(dtype, dimensions...)
	if value.Len() != shape.Size() {
		exceptions.Panicf("purego: FromFlat got %d elements for shape %s (%d elements)",
			value.Len(), shape, shape.Size())
	}
	t := newTensor(shape)
	reflect.Copy(t.flatValue(), value)
	return b.enforcePrecision(t)
}

// widenInts copies a []int into the fixed-width slice matching the platform.
func widenInts(ints []int) any {
	if strconv.IntSize == 32 {
		out := make([]int32, len(ints))
		for i, v := range ints {
			out[i] = int32(v)
		}
		return out
	}
	out := make([]int64, len(ints))
	for i, v := range ints {
		out[i] = int64(v)
	}
	return out
}

// enforcePrecision casts floating-point tensors to the canonical float type
// when a fixed precision is configured; everything else passes through.
func (b *Backend) enforcePrecision(t *Tensor) backends.Tensor {
	if !b.precision.IsSet() || !t.shape.DType.IsFloat() {
		return t
	}
	if t.shape.DType == b.FloatDType() {
		return t
	}
	return b.Cast(t, b.FloatDType())
}

// Scalar builds a rank-0 tensor from a Go scalar value.
func (b *Backend) Scalar(value any) backends.Tensor {
	if v, ok := value.(int); ok {
		if strconv.IntSize == 32 {
			value = int32(v)
		} else {
			value = int64(v)
		}
	}
	dtype := dtypes.FromAny(value)
	if dtype == dtypes.InvalidDType {
		exceptions.Panicf("purego: Scalar got unsupported value of type %T", value)
	}
	t := newTensor(shapes.Shape{DType: dtype})
	t.flatValue().Index(0).Set(reflect.ValueOf(value))
	return b.enforcePrecision(t)
}

// Zeros implements backends.Ops.
func (b *Backend) Zeros(shape shapes.Shape) backends.Tensor {
	return newTensor(shape.Clone())
}

// ZerosLike implements backends.Ops.
func (b *Backend) ZerosLike(t backends.Tensor) backends.Tensor {
	return newTensor(shapeOf(t).Clone())
}

// OnesLike implements backends.Ops.
func (b *Backend) OnesLike(t backends.Tensor) backends.Tensor {
	shape := shapeOf(t).Clone()
	out := newTensor(shape)
	dispatchFill.dispatch(shape.DType, out.flat, scalarForDType(shape.DType, 1))
	return out
}

// ARange implements backends.Ops. An InvalidDType defaults to Int32.
func (b *Backend) ARange(start, limit, delta int, dtype dtypes.DType) backends.Tensor {
	if dtype == dtypes.InvalidDType {
		dtype = dtypes.Int32
	}
	if delta == 0 {
		exceptions.Panicf("purego: ARange with delta == 0")
	}
	count := 0
	if delta > 0 && limit > start {
		count = (limit - start + delta - 1) / delta
	} else if delta < 0 && limit < start {
		count = (start - limit - delta - 1) / -delta
	}
	if count == 0 {
		exceptions.Panicf("purego: ARange(%d, %d, %d) would be empty", start, limit, delta)
	}
	flat := make([]int64, count)
	for i := range flat {
		flat[i] = int64(start + i*delta)
	}
	t := &Tensor{shape: shapes.Make(dtypes.Int64, count), flat: flat}
	if dtype == dtypes.Int64 {
		return t
	}
	return b.Cast(t, dtype)
}

// RandomUniform returns canonical-float values uniformly distributed in [0, 1).
func (b *Backend) RandomUniform(shape shapes.Shape) backends.Tensor {
	return b.randomTensor(shape, rand.Float64)
}

// RandomNormal returns canonical-float values from the standard normal.
func (b *Backend) RandomNormal(shape shapes.Shape) backends.Tensor {
	return b.randomTensor(shape, rand.NormFloat64)
}

func (b *Backend) randomTensor(shape shapes.Shape, sample func() float64) backends.Tensor {
	flat := make([]float64, shape.WithDType(dtypes.Float64).Size())
	for i := range flat {
		flat[i] = sample()
	}
	t := &Tensor{shape: shape.WithDType(dtypes.Float64), flat: flat}
	if b.FloatDType() == dtypes.Float64 {
		return t
	}
	return b.Cast(t, b.FloatDType())
}
