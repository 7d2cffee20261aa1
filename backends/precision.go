package backends

import (
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Precision is the process-wide floating-point bit width used whenever the
// framework -- not the caller -- must pick a numeric type.
//
// It is set once at backend construction time and read on every floating-point
// tensor construction. PrecisionUnset means the backend has no fixed precision:
// floating-point inputs keep their dtype and the canonical float type defaults
// to 32 bits.
type Precision int

const (
	PrecisionUnset Precision = 0
	Precision16    Precision = 16
	Precision32    Precision = 32
	Precision64    Precision = 64
)

// ParsePrecision converts one of "16", "32", "64" or "" (unset) to a Precision.
// Anything else is a configuration error.
func ParsePrecision(value string) Precision {
	switch value {
	case "":
		return PrecisionUnset
	case "16":
		return Precision16
	case "32":
		return Precision32
	case "64":
		return Precision64
	}
	panic(errors.Wrapf(ErrInvalidPrecision, "precision must be one of 16, 32 or 64, got %q", value))
}

// FloatDType returns the canonical floating-point dtype for the precision.
// An unset precision defaults to Float32.
// It panics wrapping ErrInvalidPrecision for any other value.
func (p Precision) FloatDType() dtypes.DType {
	switch p {
	case Precision16:
		return dtypes.Float16
	case PrecisionUnset, Precision32:
		return dtypes.Float32
	case Precision64:
		return dtypes.Float64
	}
	panic(errors.Wrapf(ErrInvalidPrecision, "precision=%d", int(p)))
}

// ComplexDType returns the canonical complex dtype for the precision.
func (p Precision) ComplexDType() dtypes.DType {
	if p == Precision64 {
		return dtypes.Complex128
	}
	// Precision 16 has no complex counterpart; Complex64 is the narrowest.
	if p == PrecisionUnset || p == Precision16 || p == Precision32 {
		return dtypes.Complex64
	}
	panic(errors.Wrapf(ErrInvalidPrecision, "precision=%d", int(p)))
}

// IsSet returns whether a fixed precision was configured.
func (p Precision) IsSet() bool { return p != PrecisionUnset }

// CombineTypes resolves the dtypes of the operands of a mixed-type operation to
// a single working dtype, under the given precision:
//
//   - all bool: bool;
//   - bool and int only: the widest int type present;
//   - bool, int and float only: the canonical float type of the precision;
//   - anything containing complex: the canonical complex type of the precision.
//
// Any dtype outside those four kinds panics wrapping ErrDTypePromotion -- it is
// never coerced to a nearby type.
func CombineTypes(p Precision, dts ...dtypes.DType) dtypes.DType {
	if len(dts) == 0 {
		exceptions.Panicf("CombineTypes requires at least one dtype")
	}
	var hasInt, hasFloat, hasComplex bool
	widestInt := dtypes.InvalidDType
	for _, dt := range dts {
		switch dt.Kind() {
		case dtypes.KindBool:
			// Participates in every tier.
		case dtypes.KindInt:
			hasInt = true
			if widestInt == dtypes.InvalidDType || dt.Bits() > widestInt.Bits() {
				widestInt = dt
			}
		case dtypes.KindFloat:
			hasFloat = true
		case dtypes.KindComplex:
			hasComplex = true
		default:
			panic(errors.Wrapf(ErrDTypePromotion, "combining %v: %s is not a bool, int, float or complex dtype", dts, dt))
		}
	}
	switch {
	case hasComplex:
		return p.ComplexDType()
	case hasFloat:
		return p.FloatDType()
	case hasInt:
		return widestInt
	default:
		return dtypes.Bool
	}
}
