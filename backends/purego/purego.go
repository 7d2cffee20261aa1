// Package purego implements a simple, portable, pure Go backend binding for
// fluidml.
//
// The engine stores tensors as flat row-major Go slices. Like most native
// engines, its internal convolution and sampling primitives work on the
// "channels first" layout (channel axis immediately after batch); the binding
// converts to and from the framework's canonical "channels last" layout around
// every such primitive call (see layout.go), so the public operations keep
// canonical semantics exactly.
package purego

import (
	"strings"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/gomlx/exceptions"
)

// BackendName to be used in FLUIDML_BACKEND to specify this backend.
const BackendName = "go"

func init() {
	backends.Register(BackendName, New)
}

// New constructs a new pure Go Backend.
//
// The config string is a comma-separated list of key=value options.
// The only option is "precision=16|32|64"; absent, the precision is unset.
func New(config string) backends.Backend {
	precision := backends.PrecisionUnset
	for _, option := range strings.Split(config, ",") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}
		key, value, _ := strings.Cut(option, "=")
		switch key {
		case "precision":
			precision = backends.ParsePrecision(value)
		default:
			exceptions.Panicf("purego: unknown backend option %q in configuration %q", option, config)
		}
	}
	return NewWithPrecision(precision)
}

// NewWithPrecision constructs the backend with an explicit precision.
// Tests use this to instantiate independent configurations side by side.
func NewWithPrecision(precision backends.Precision) *Backend {
	// Surface a bad width at construction, not at first ToFloat call.
	precision.FloatDType()
	return &Backend{precision: precision}
}

// Backend implements the backends.Backend interface with pure Go compute
// kernels. Its only state is the construction-time configuration; all tensor
// operations are synchronous, blocking and functional.
type Backend struct {
	precision backends.Precision
}

// Compile-time check that purego.Backend implements backends.Backend.
var _ backends.Backend = &Backend{}

// Name returns the short name of the backend.
func (b *Backend) Name() string { return BackendName }

// String implements fmt.Stringer.
func (b *Backend) String() string { return BackendName }

// Description is a longer description of the Backend that can be used to pretty-print.
func (b *Backend) Description() string {
	return "Pure Go portable backend"
}

// Precision returns the configured floating-point precision.
func (b *Backend) Precision() backends.Precision { return b.precision }

// FloatDType returns the canonical float dtype for the configured precision.
func (b *Backend) FloatDType() dtypes.DType { return b.precision.FloatDType() }

// ComplexDType returns the canonical complex dtype for the configured precision.
func (b *Backend) ComplexDType() dtypes.DType { return b.precision.ComplexDType() }

// CombineTypes resolves mixed operand dtypes to a single working dtype.
func (b *Backend) CombineTypes(dts ...dtypes.DType) dtypes.DType {
	return backends.CombineTypes(b.precision, dts...)
}

// AutoCast casts all tensors to their combined dtype, returned in input order.
func (b *Backend) AutoCast(tensors ...backends.Tensor) []backends.Tensor {
	dts := make([]dtypes.DType, len(tensors))
	for i, t := range tensors {
		dts[i] = b.DType(t)
	}
	combined := b.CombineTypes(dts...)
	results := make([]backends.Tensor, len(tensors))
	for i, t := range tensors {
		if dts[i] == combined {
			results[i] = t
			continue
		}
		results[i] = b.Cast(t, combined)
	}
	return results
}

// Finalize releases all the associated resources immediately and makes the
// backend invalid. The pure Go engine holds no external resources.
func (b *Backend) Finalize() {}
