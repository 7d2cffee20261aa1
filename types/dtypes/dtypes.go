// Package dtypes defines the engine-neutral DType enum used across fluidml.
//
// A DType describes the unit element of a tensor by kind (bool, signed/unsigned
// int, float, complex) and bit width. Every backend binding translates these to
// and from its own native type enumeration; the translation tables must be total
// over the supported set and fail loudly on anything unmapped.
//
// Go float16 support uses the github.com/x448/float16 implementation.
package dtypes

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters don't follow the
// specifications.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

// DType is an enum of the data types supported by fluidml tensors.
type DType int32

const (
	// InvalidDType is the zero value, serving as default.
	InvalidDType DType = iota

	// Bool is a two-state boolean.
	Bool

	// Int8 through Int64 are signed integral values of fixed width.
	Int8
	Int16
	Int32
	Int64

	// Uint8 is an unsigned 8 bits integral value.
	Uint8

	// Float16 through Float64 are IEEE-754 floating-point values of fixed width.
	Float16
	Float32
	Float64

	// Complex64 and Complex128 are pairs of Float32 and Float64 respectively.
	Complex64
	Complex128
)

// Kind is the coarse category of a DType, used by type promotion.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindComplex
)

// MapOfNames to their dtypes.
// It is initialized to also include the lower-case version of the names.
var MapOfNames = map[string]DType{
	"InvalidDType": InvalidDType,
	"Bool":         Bool,
	"Int8":         Int8,
	"Int16":        Int16,
	"Int32":        Int32,
	"Int64":        Int64,
	"Uint8":        Uint8,
	"Float16":      Float16,
	"Float32":      Float32,
	"Float64":      Float64,
	"Complex64":    Complex64,
	"Complex128":   Complex128,
}

func init() {
	// Only works for 32 and 64 bits platforms.
	if strconv.IntSize != 32 && strconv.IntSize != 64 {
		panicf("cannot use int of %d bits with fluidml -- only platforms with int32 or int64 are supported", strconv.IntSize)
	}
	for name, dtype := range MapOfNames {
		MapOfNames[toLower(name)] = dtype
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	switch dtype {
	case Bool:
		return "Bool"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Uint8:
		return "Uint8"
	case Float16:
		return "Float16"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Complex64:
		return "Complex64"
	case Complex128:
		return "Complex128"
	default:
		return "InvalidDType"
	}
}

// FromName returns the DType with the given name (case-insensitive).
// It panics if the name doesn't map to any DType.
func FromName(name string) DType {
	dtype, found := MapOfNames[name]
	if !found {
		dtype, found = MapOfNames[toLower(name)]
	}
	if !found {
		panicf("unknown dtype name %q", name)
	}
	return dtype
}

// Kind returns the coarse category of the dtype.
func (dtype DType) Kind() Kind {
	switch dtype {
	case Bool:
		return KindBool
	case Int8, Int16, Int32, Int64, Uint8:
		return KindInt
	case Float16, Float32, Float64:
		return KindFloat
	case Complex64, Complex128:
		return KindComplex
	default:
		return KindInvalid
	}
}

// Size returns the number of bytes of one element of the given DType.
func (dtype DType) Size() int {
	return int(dtype.GoType().Size())
}

// Bits returns the number of bits of one element of the given DType.
func (dtype DType) Bits() int {
	return dtype.Size() * 8
}

// Memory returns the number of bytes for the given DType.
// It's an alias to Size, converted to uintptr.
func (dtype DType) Memory() uintptr {
	return uintptr(dtype.Size())
}

// IsFloat returns whether dtype is a floating-point type.
// It returns false for complex numbers.
func (dtype DType) IsFloat() bool {
	return dtype == Float16 || dtype == Float32 || dtype == Float64
}

// IsInt returns whether dtype is an integer type (signed or unsigned).
func (dtype DType) IsInt() bool {
	return dtype == Int8 || dtype == Int16 || dtype == Int32 || dtype == Int64 || dtype == Uint8
}

// IsComplex returns whether dtype is a complex number type.
func (dtype DType) IsComplex() bool {
	return dtype == Complex64 || dtype == Complex128
}

// IsSupported returns whether dtype is a valid fluidml dtype.
func (dtype DType) IsSupported() bool {
	return dtype.Kind() != KindInvalid
}

// RealDType returns the real component dtype of complex dtypes.
// For float dtypes, it returns itself.
// It returns InvalidDType for other dtypes.
func (dtype DType) RealDType() DType {
	if dtype.IsFloat() {
		return dtype
	}
	switch dtype {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	default:
		return InvalidDType
	}
}

// ComplexDType returns the complex dtype whose components have this float dtype.
// Float16 has no complex counterpart and maps to Complex64.
// It returns InvalidDType for non-float dtypes (complex dtypes return themselves).
func (dtype DType) ComplexDType() DType {
	switch dtype {
	case Float16, Float32:
		return Complex64
	case Float64:
		return Complex128
	case Complex64, Complex128:
		return dtype
	default:
		return InvalidDType
	}
}

// IsPromotableTo returns whether dtype can be promoted to target: same kind and
// the target width is at least as large.
func (dtype DType) IsPromotableTo(target DType) bool {
	if dtype == target {
		return true
	}
	if dtype.Kind() != target.Kind() {
		return false
	}
	return dtype.Bits() <= target.Bits()
}

// Pre-generated constant reflect.Type values for convenience.
var (
	float16Type = reflect.TypeOf(float16.Float16(0))
)

// GoType returns the Go reflect.Type corresponding to the tensor DType.
// It panics for invalid DType values.
func (dtype DType) GoType() reflect.Type {
	switch dtype {
	case Bool:
		return reflect.TypeOf(true)
	case Int8:
		return reflect.TypeOf(int8(0))
	case Int16:
		return reflect.TypeOf(int16(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Int64:
		return reflect.TypeOf(int64(0))
	case Uint8:
		return reflect.TypeOf(uint8(0))
	case Float16:
		return float16Type
	case Float32:
		return reflect.TypeOf(float32(0))
	case Float64:
		return reflect.TypeOf(float64(0))
	case Complex64:
		return reflect.TypeOf(complex64(0))
	case Complex128:
		return reflect.TypeOf(complex128(0))
	default:
		panicf("unknown dtype %q (%d) in DType.GoType", dtype, dtype)
		panic(nil)
	}
}

// GoStr converts dtype to the corresponding Go type and converts that to string.
func (dtype DType) GoStr() string {
	return dtype.GoType().Name()
}

// FromGoType returns the DType for the given reflect.Type.
// Unsupported types return InvalidDType.
func FromGoType(t reflect.Type) DType {
	if t == float16Type {
		return Float16
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		switch strconv.IntSize {
		case 32:
			return Int32
		case 64:
			return Int64
		default:
			panicf("cannot use int of %d bits with fluidml -- try using int32 or int64", strconv.IntSize)
		}
	case reflect.Uint8:
		return Uint8
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128
	default:
		return InvalidDType
	}
	return InvalidDType
}

// FromAny introspects the underlying type of value and returns the corresponding
// DType. Unsupported types return InvalidDType.
func FromAny(value any) DType {
	return FromGoType(reflect.TypeOf(value))
}

// FromGenericsType returns the DType enum for the given Go type.
func FromGenericsType[T Supported]() DType {
	var t T
	return FromAny(t)
}

// Supported lists the Go types fluidml tensors can be built from.
// Used as traits for generics.
//
// Notice Go's `int` type is not portable, since it may translate to dtypes Int32
// or Int64 depending on the platform.
type Supported interface {
	bool | float16.Float16 |
		int | int8 | int16 | int32 | int64 | uint8 |
		float32 | float64 | complex64 | complex128
}

// Number represents the Go numeric types corresponding to supported DTypes.
// It includes complex numbers.
// It doesn't include float16.Float16 because it is not a native number type.
type Number interface {
	int | int8 | int16 | int32 | int64 | uint8 | float32 | float64 | complex64 | complex128
}

// NumberNotComplex represents the non-complex Go numeric types corresponding to
// supported DTypes.
type NumberNotComplex interface {
	int | int8 | int16 | int32 | int64 | uint8 | float32 | float64
}

// GoFloat represents a continuous Go numeric type supported by fluidml.
type GoFloat interface {
	constraints.Float
}
