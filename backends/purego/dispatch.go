package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/pkg/errors"
)

// dispatchFn is the type of functions a dtypeDispatcher can call.
// Arguments and result are passed as `any`; each generic instantiation
// type-asserts the flat slices it receives.
type dispatchFn func(params ...any) any

const maxDTypes = 16

// dtypeDispatcher maps a dtype to the generic kernel instantiation that handles
// it. Kernels are registered at package initialization; dispatching to a dtype
// with no registered kernel is an unsupported-operation error.
type dtypeDispatcher struct {
	name string
	fns  [maxDTypes]dispatchFn
}

func newDispatcher(name string) *dtypeDispatcher {
	return &dtypeDispatcher{name: name}
}

// register a kernel for a dtype. Overwrites any previous registration.
func (d *dtypeDispatcher) register(dtype dtypes.DType, fn dispatchFn) *dtypeDispatcher {
	if dtype < 0 || dtype >= maxDTypes {
		panic(errors.Errorf("dtype %s out of range for dispatcher %s", dtype, d.name))
	}
	d.fns[dtype] = fn
	return d
}

// dispatch calls the kernel registered for dtype.
func (d *dtypeDispatcher) dispatch(dtype dtypes.DType, params ...any) any {
	if dtype < 0 || dtype >= maxDTypes || d.fns[dtype] == nil {
		panic(errors.Wrapf(backends.ErrNotImplemented, "dtype %s not supported by %s", dtype, d.name))
	}
	return d.fns[dtype](params...)
}

// errNotImplementedf builds an error wrapping backends.ErrNotImplemented, for
// operations this backend deliberately does not support.
func errNotImplementedf(format string, args ...any) error {
	return errors.Wrapf(backends.ErrNotImplemented, format, args...)
}

// supported reports whether a kernel is registered for dtype.
func (d *dtypeDispatcher) supported(dtype dtypes.DType) bool {
	return dtype >= 0 && dtype < maxDTypes && d.fns[dtype] != nil
}
