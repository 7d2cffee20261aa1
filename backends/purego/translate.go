package purego

import (
	"reflect"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// The engine's native element type enumeration is Go's reflect.Type. These two
// tables translate between it and the engine-neutral dtype set. They are total
// over the supported set; an unmapped entry on either side panics, it is never
// defaulted to a nearby type.

var (
	boolType       = reflect.TypeOf(true)
	int8Type       = reflect.TypeOf(int8(0))
	int16Type      = reflect.TypeOf(int16(0))
	int32Type      = reflect.TypeOf(int32(0))
	int64Type      = reflect.TypeOf(int64(0))
	uint8Type      = reflect.TypeOf(uint8(0))
	float16Type    = reflect.TypeOf(float16.Float16(0))
	float32Type    = reflect.TypeOf(float32(0))
	float64Type    = reflect.TypeOf(float64(0))
	complex64Type  = reflect.TypeOf(complex64(0))
	complex128Type = reflect.TypeOf(complex128(0))
)

var dtypeToNative = map[dtypes.DType]reflect.Type{
	dtypes.Bool:       boolType,
	dtypes.Int8:       int8Type,
	dtypes.Int16:      int16Type,
	dtypes.Int32:      int32Type,
	dtypes.Int64:      int64Type,
	dtypes.Uint8:      uint8Type,
	dtypes.Float16:    float16Type,
	dtypes.Float32:    float32Type,
	dtypes.Float64:    float64Type,
	dtypes.Complex64:  complex64Type,
	dtypes.Complex128: complex128Type,
}

var nativeToDType = map[reflect.Type]dtypes.DType{
	boolType:       dtypes.Bool,
	int8Type:       dtypes.Int8,
	int16Type:      dtypes.Int16,
	int32Type:      dtypes.Int32,
	int64Type:      dtypes.Int64,
	uint8Type:      dtypes.Uint8,
	float16Type:    dtypes.Float16,
	float32Type:    dtypes.Float32,
	float64Type:    dtypes.Float64,
	complex64Type:  dtypes.Complex64,
	complex128Type: dtypes.Complex128,
}

// translateDType returns the native element type for an engine-neutral dtype.
func translateDType(dtype dtypes.DType) reflect.Type {
	native, found := dtypeToNative[dtype]
	if !found {
		panic(errors.Wrapf(backends.ErrDTypePromotion, "purego: dtype %s has no native type", dtype))
	}
	return native
}

// invTranslateDType returns the engine-neutral dtype for a native element type.
func invTranslateDType(native reflect.Type) dtypes.DType {
	dtype, found := nativeToDType[native]
	if !found {
		panic(errors.Wrapf(backends.ErrDTypePromotion, "purego: native type %s has no dtype", native))
	}
	return dtype
}
