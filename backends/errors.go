package backends

import "github.com/pkg/errors"

// Sentinel errors for the failure classes of backend operations. Operations
// panic with an error value wrapping one of these (see package
// github.com/gomlx/exceptions); callers that want to probe a capability catch
// the panic and test with errors.Is.
//
// None of these are retried or suppressed inside the backend layer: they always
// propagate to the immediate caller.
var (
	// ErrNotImplemented indicates an operation that is contractually defined but
	// not implemented by this binding (e.g. dense MatMul, generic Scatter,
	// GatherND with batchDims > 1). Callers may legitimately probe for it and
	// fall back to another formulation.
	ErrNotImplemented = errors.New("not implemented")

	// ErrDTypePromotion indicates CombineTypes or a dtype translation table
	// received a combination or value outside its total mapping. It is always
	// fatal to the current operation and never silently coerced.
	ErrDTypePromotion = errors.New("cannot resolve dtypes")

	// ErrInvalidPrecision indicates the backend precision was configured to an
	// unsupported width. It surfaces at the point of use, not deferred.
	ErrInvalidPrecision = errors.New("invalid precision configured")

	// ErrUnsupportedParams indicates a parameter combination outside the
	// binding's contract (e.g. Resample with non-linear interpolation).
	ErrUnsupportedParams = errors.New("unsupported parameter combination")
)
