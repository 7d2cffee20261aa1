package backends

import (
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
)

// Condition evaluates the loop variables of a WhileLoop and decides whether to
// keep iterating.
type Condition func(loopVars []Tensor) bool

// Body computes the next set of loop variables of a WhileLoop.
type Body func(loopVars []Tensor) []Tensor

// Interpolation selects how Resample looks up values between grid points.
type Interpolation int

//go:generate enumer -type=Interpolation -trimprefix=Interpolation -transform=snake -output=interpolation_enumer.go standard_ops.go

const (
	InterpolationLinear Interpolation = iota
	InterpolationNearest
)

// Boundary selects how Resample treats out-of-range sample coordinates.
type Boundary int

//go:generate enumer -type=Boundary -trimprefix=Boundary -transform=snake -output=boundary_enumer.go standard_ops.go

const (
	// BoundaryConstant fills out-of-range lookups with a constant value.
	BoundaryConstant Boundary = iota
	// BoundaryReplicate clamps sample coordinates to the valid range.
	BoundaryReplicate
	// BoundaryCircular wraps sample coordinates around each spatial axis.
	BoundaryCircular
)

// ConvPadding selects the padding policy of Conv.
type ConvPadding int

//go:generate enumer -type=ConvPadding -trimprefix=ConvPadding -transform=snake -output=convpadding_enumer.go standard_ops.go

const (
	// ConvPaddingValid applies no padding: the output spatial size shrinks by
	// the kernel size minus one.
	ConvPaddingValid ConvPadding = iota
	// ConvPaddingSame zero-pads symmetrically so the output spatial size equals
	// the input. For even kernel sizes the total pad of size-1 is split
	// floor-before / ceil-after.
	ConvPaddingSame
)

// Ops lists the tensor operations every backend binding must provide.
//
// All tensors are in canonical layout: axis 0 is batch, the last axis is
// channel, the axes in between are spatial. Operations never mutate their
// inputs; they return newly produced tensors.
//
// Operations panic with errors wrapping the sentinels in errors.go on failure;
// see the error taxonomy there.
type Ops interface {

	// FloatDType returns the canonical floating-point dtype, driven by the
	// configured Precision.
	FloatDType() dtypes.DType

	// ComplexDType returns the canonical complex dtype, driven by the
	// configured Precision.
	ComplexDType() dtypes.DType

	// CombineTypes resolves the given dtypes to a single working dtype.
	// See backends.CombineTypes for the promotion tiers.
	CombineTypes(dts ...dtypes.DType) dtypes.DType

	// AutoCast computes CombineTypes over the dtypes of the given tensors and
	// casts every tensor to the result, returning them in the same order.
	// It is idempotent in value: auto-casting already uniform tensors is a
	// no-op, though new tensor objects may be produced.
	AutoCast(tensors ...Tensor) []Tensor

	// Cast converts the tensor to the given dtype.
	Cast(t Tensor, dtype dtypes.DType) Tensor

	// ToFloat returns t unchanged if it is already floating-point and no fixed
	// precision is configured; otherwise it casts t to the canonical float type.
	ToFloat(t Tensor) Tensor

	// ToInt casts the tensor to Int32.
	ToInt(t Tensor) Tensor

	// ToComplex combines a real and an imaginary tensor into a complex one.
	// A nil imag means zero imaginary part. If re is already complex it is
	// returned unchanged (imag must then be nil).
	ToComplex(re, imag Tensor) Tensor

	// Real returns the real part of a complex tensor.
	Real(t Tensor) Tensor

	// Imag returns the imaginary part of a complex tensor.
	Imag(t Tensor) Tensor

	// FromFlat builds a tensor from a flat Go slice (e.g. []float32) and
	// dimensions; the slice length must equal the product of the dimensions.
	// Floating-point data is cast to the canonical float type if a fixed
	// precision is configured. The slice is copied, not aliased.
	FromFlat(flat any, dimensions ...int) Tensor

	// Scalar builds a rank-0 tensor from a Go scalar value.
	Scalar(value any) Tensor

	// Zeros returns a zero-filled tensor of the given shape.
	Zeros(shape shapes.Shape) Tensor

	// ZerosLike returns a zero-filled tensor with the shape and dtype of t.
	ZerosLike(t Tensor) Tensor

	// OnesLike returns a one-filled tensor with the shape and dtype of t.
	OnesLike(t Tensor) Tensor

	// ARange returns the 1D tensor [start, start+delta, ...) up to but
	// excluding limit. An InvalidDType defaults to Int32.
	ARange(start, limit, delta int, dtype dtypes.DType) Tensor

	// RandomUniform returns a tensor of the canonical float type with
	// uniformly distributed values in [0, 1).
	RandomUniform(shape shapes.Shape) Tensor

	// RandomNormal returns a tensor of the canonical float type with
	// standard normally distributed values.
	RandomNormal(shape shapes.Shape) Tensor

	// Shape returns the shape of the tensor.
	Shape(t Tensor) shapes.Shape

	// DType returns the engine-neutral dtype of the tensor.
	DType(t Tensor) dtypes.DType

	// Rank returns the number of axes of the tensor.
	Rank(t Tensor) int

	// FlatData returns a copy of the tensor data as a flat Go slice in
	// row-major order.
	FlatData(t Tensor) any

	// Copy returns an independent copy of the tensor.
	Copy(t Tensor) Tensor

	// Transpose permutes the axes of the tensor: output axis i takes input
	// axis axes[i]. axes must be a permutation of [0, rank).
	Transpose(t Tensor, axes []int) Tensor

	// Reshape returns a tensor with the same data and the new dimensions.
	Reshape(t Tensor, dimensions []int) Tensor

	// ExpandDims inserts count axes of dimension 1 at the given axis.
	// A negative axis counts from the end, with -1 appending a last axis.
	ExpandDims(t Tensor, axis, count int) Tensor

	// Stack joins tensors of equal shape along a new axis.
	Stack(ts []Tensor, axis int) Tensor

	// Concat joins tensors along an existing axis.
	Concat(ts []Tensor, axis int) Tensor

	// Unstack splits the tensor along the given axis into rank-1 slices.
	Unstack(t Tensor, axis int) []Tensor

	// Tile repeats the tensor multiples[i] times along axis i.
	Tile(t Tensor, multiples []int) Tensor

	// BooleanMask returns the flattened elements of t where mask is true.
	// mask must have the same dimensions as t.
	BooleanMask(t, mask Tensor) Tensor

	// Binary operations auto-cast their operands and apply NumPy-style
	// broadcasting.

	Add(a, b Tensor) Tensor
	Sub(a, b Tensor) Tensor
	Mul(a, b Tensor) Tensor
	Div(a, b Tensor) Tensor

	// DivNoNaN divides element-wise, returning 0 where the divisor is 0.
	DivNoNaN(a, b Tensor) Tensor

	// Pow raises a to the power b element-wise.
	Pow(a, b Tensor) Tensor

	Maximum(a, b Tensor) Tensor
	Minimum(a, b Tensor) Tensor

	// Clip limits t to [min, max] element-wise. min and max broadcast against t.
	Clip(t, min, max Tensor) Tensor

	// Comparisons return Bool tensors.

	Equal(a, b Tensor) Tensor
	Greater(a, b Tensor) Tensor
	Less(a, b Tensor) Tensor

	// Where selects x where cond is true and y otherwise.
	// cond must be Bool; x and y are auto-cast and broadcast.
	Where(cond, x, y Tensor) Tensor

	// Unary operations preserve shape and dtype (except IsFinite → Bool).

	Neg(t Tensor) Tensor
	Abs(t Tensor) Tensor
	Sign(t Tensor) Tensor
	Round(t Tensor) Tensor
	Ceil(t Tensor) Tensor
	Floor(t Tensor) Tensor
	Sqrt(t Tensor) Tensor
	Exp(t Tensor) Tensor
	Log(t Tensor) Tensor
	Sin(t Tensor) Tensor
	Cos(t Tensor) Tensor
	IsFinite(t Tensor) Tensor

	// Reductions reduce over the given axes, or all axes if axes is nil.
	// With keepDims the reduced axes are kept with dimension 1.

	Sum(t Tensor, axes []int, keepDims bool) Tensor
	Prod(t Tensor, axes []int, keepDims bool) Tensor
	Mean(t Tensor, axes []int, keepDims bool) Tensor
	Max(t Tensor, axes []int, keepDims bool) Tensor
	Min(t Tensor, axes []int, keepDims bool) Tensor
	Std(t Tensor, axes []int, keepDims bool) Tensor

	// Any and All reduce Bool tensors with logical or/and.
	Any(t Tensor, axes []int, keepDims bool) Tensor
	All(t Tensor, axes []int, keepDims bool) Tensor

	// Pad extends the tensor per axis according to spec, which may mix modes
	// and constants across axes. The binding decomposes a mixed spec into
	// single-mode passes applied sequentially; since padding is per-axis
	// independent, pass order doesn't change the result.
	//
	// Symmetric mode with any width > 1 uses a true symmetric reflection (edge
	// values included once), not a repeated replicate.
	Pad(t Tensor, spec PadSpec) Tensor

	// Resample performs grid sampling: for each output location it looks up an
	// interpolated value from inputs at the floating-point coordinates given by
	// sampleCoords, honoring the boundary policy for out-of-range coordinates.
	//
	// inputs is (batch, spatial..., channels); sampleCoords is
	// (batch, outSpatial..., rank) where the last axis holds one coordinate per
	// spatial axis of inputs, in order.
	//
	// Only InterpolationLinear with constantValue == 0 is in contract; other
	// combinations panic wrapping ErrUnsupportedParams.
	Resample(inputs, sampleCoords Tensor, interpolation Interpolation, boundary Boundary, constantValue float64) Tensor

	// Conv computes the n-dimensional convolution of t (batch, spatial...,
	// inChannels) with kernel (kernelSpatial..., inChannels, outChannels).
	// 1D, 2D or 3D is selected by the rank of t.
	Conv(t, kernel Tensor, padding ConvPadding) Tensor

	// GatherND indexes values using coordinate tuples in the last axis of
	// indices. batchDims 0 indexes directly; batchDims 1 treats the leading
	// axis of both operands as an aligned batch axis, indexes per batch element
	// and restacks along axis 0. batchDims > 1 panics wrapping
	// ErrNotImplemented.
	GatherND(values, indices Tensor, batchDims int) Tensor

	// Gather is not implemented by the current bindings; use GatherND.
	Gather(values, indices Tensor) Tensor

	// ScatterND is not implemented by the current bindings.
	ScatterND(indices, values Tensor, shape shapes.Shape) Tensor

	// MatMul multiplies a sparse left operand by a dense right operand.
	// A dense left operand panics wrapping ErrNotImplemented.
	MatMul(a, b Tensor) Tensor

	// Dot contracts the last `axes` axes of a with the first `axes` axes of b.
	Dot(a, b Tensor, axes int) Tensor

	// SparseCOO builds a sparse rank-2 tensor from coordinates and values.
	// indices is (nnz, 2) integer coordinates, values is (nnz,).
	SparseCOO(indices, values Tensor, shape shapes.Shape) Tensor

	// FFT computes the forward discrete Fourier transform over all spatial axes
	// (every axis except the first, batch, and the last, channel), returning a
	// complex tensor of the same shape. Non-complex input is promoted with
	// ToComplex.
	FFT(t Tensor) Tensor

	// IFFT is the inverse of FFT, normalized so that IFFT(FFT(x)) == x.
	IFFT(t Tensor) Tensor

	// WhileLoop repeatedly evaluates cond(loopVars) and while it returns true
	// replaces loopVars with body(loopVars). If maxIterations >= 0 the body
	// runs at most that many times regardless of cond. It returns the final
	// loop variables.
	//
	// This is a sequential construct: each iteration fully completes before the
	// next begins.
	WhileLoop(cond Condition, body Body, loopVars []Tensor, maxIterations int) []Tensor
}
