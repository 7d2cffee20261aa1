package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/dtypes"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// Reductions accept a list of axes (negative values count from the end); a nil
// or empty list reduces over every axis. With keepDims the reduced axes stay in
// the output with dimension 1.

// normalizeReduceAxes resolves and validates reduction axes, sorted ascending.
func normalizeReduceAxes(shape shapes.Shape, axes []int) []int {
	rank := shape.Rank()
	if len(axes) == 0 {
		all := make([]int, rank)
		for a := range all {
			all[a] = a
		}
		return all
	}
	seen := make([]bool, rank)
	for _, axis := range axes {
		if axis < 0 {
			axis += rank
		}
		if axis < 0 || axis >= rank {
			exceptions.Panicf("purego: reduction axes %v out of range for %s", axes, shape)
		}
		if seen[axis] {
			exceptions.Panicf("purego: reduction axes %v contain duplicates", axes)
		}
		seen[axis] = true
	}
	normalized := make([]int, 0, len(axes))
	for axis, s := range seen {
		if s {
			normalized = append(normalized, axis)
		}
	}
	return normalized
}

// reducePlan computes the output shape and, for every input element, the flat
// output index it accumulates into.
func reducePlan(shape shapes.Shape, axes []int, keepDims bool) (outShape shapes.Shape, outIdx []int, count int) {
	rank := shape.Rank()
	reduced := make([]bool, rank)
	count = 1
	for _, axis := range axes {
		reduced[axis] = true
		count *= shape.Dimensions[axis]
	}
	outDims := make([]int, 0, rank)
	for a, dim := range shape.Dimensions {
		if reduced[a] {
			if keepDims {
				outDims = append(outDims, 1)
			}
			continue
		}
		outDims = append(outDims, dim)
	}
	outShape = shapes.Shape{DType: shape.DType, Dimensions: outDims}
	// Strides over the output, with zero stride on reduced axes.
	strides := make([]int, rank)
	stride := 1
	for a := rank - 1; a >= 0; a-- {
		if reduced[a] {
			continue
		}
		strides[a] = stride
		stride *= shape.Dimensions[a]
	}
	outIdx = make([]int, shape.Size())
	coord := make([]int, rank)
	for i := range outIdx {
		idx := 0
		for a, c := range coord {
			idx += c * strides[a]
		}
		outIdx[i] = idx
		incrCoord(coord, shape.Dimensions)
	}
	return
}

type reduceOp int

const (
	reduceSum reduceOp = iota
	reduceProd
	reduceMax
	reduceMin
)

var reduceOpNames = [...]string{"Sum", "Prod", "Max", "Min"}

var dispatchReduce = newDispatcher("reduceOps")

func execReduceGeneric[T podNumeric](params ...any) any {
	op := params[0].(reduceOp)
	src := params[1].([]T)
	outIdx := params[2].([]int)
	outSize := params[3].(int)
	out := make([]T, outSize)
	switch op {
	case reduceSum:
		for i, v := range src {
			out[outIdx[i]] += v
		}
	case reduceProd:
		for i := range out {
			out[i] = 1
		}
		for i, v := range src {
			out[outIdx[i]] *= v
		}
	case reduceMax, reduceMin:
		seen := make([]bool, outSize)
		for i, v := range src {
			o := outIdx[i]
			if !seen[o] {
				out[o] = v
				seen[o] = true
				continue
			}
			if (op == reduceMax && v > out[o]) || (op == reduceMin && v < out[o]) {
				out[o] = v
			}
		}
	}
	return out
}

func execReduceComplexGeneric[T podComplex](params ...any) any {
	op := params[0].(reduceOp)
	src := params[1].([]T)
	outIdx := params[2].([]int)
	outSize := params[3].(int)
	out := make([]T, outSize)
	switch op {
	case reduceSum:
		for i, v := range src {
			out[outIdx[i]] += v
		}
	case reduceProd:
		for i := range out {
			out[i] = 1
		}
		for i, v := range src {
			out[outIdx[i]] *= v
		}
	default:
		panic(errNotImplementedf("reduction %s for complex dtypes", reduceOpNames[op]))
	}
	return out
}

// Float16 accumulates in float32 for precision.
func execReduceFloat16(params ...any) any {
	op := params[0].(reduceOp)
	src := params[1].([]float16.Float16)
	outIdx := params[2].([]int)
	outSize := params[3].(int)
	wide := make([]float32, len(src))
	for i, v := range src {
		wide[i] = v.Float32()
	}
	acc := execReduceGeneric[float32](op, wide, outIdx, outSize).([]float32)
	out := make([]float16.Float16, len(acc))
	for i, v := range acc {
		out[i] = float16.Fromfloat32(v)
	}
	return out
}

func init() {
	dispatchReduce.register(dtypes.Int8, execReduceGeneric[int8])
	dispatchReduce.register(dtypes.Int16, execReduceGeneric[int16])
	dispatchReduce.register(dtypes.Int32, execReduceGeneric[int32])
	dispatchReduce.register(dtypes.Int64, execReduceGeneric[int64])
	dispatchReduce.register(dtypes.Uint8, execReduceGeneric[uint8])
	dispatchReduce.register(dtypes.Float16, execReduceFloat16)
	dispatchReduce.register(dtypes.Float32, execReduceGeneric[float32])
	dispatchReduce.register(dtypes.Float64, execReduceGeneric[float64])
	dispatchReduce.register(dtypes.Complex64, execReduceComplexGeneric[complex64])
	dispatchReduce.register(dtypes.Complex128, execReduceComplexGeneric[complex128])
}

func (b *Backend) reduce(op reduceOp, t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	tt := tensorOf(t)
	normalized := normalizeReduceAxes(tt.shape, axes)
	outShape, outIdx, _ := reducePlan(tt.shape, normalized, keepDims)
	flat := dispatchReduce.dispatch(tt.shape.DType, op, tt.flat, outIdx, outShape.Size())
	return &Tensor{shape: outShape, flat: flat}
}

func (b *Backend) Sum(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	return b.reduce(reduceSum, t, axes, keepDims)
}

func (b *Backend) Prod(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	return b.reduce(reduceProd, t, axes, keepDims)
}

func (b *Backend) Max(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	return b.reduce(reduceMax, t, axes, keepDims)
}

func (b *Backend) Min(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	return b.reduce(reduceMin, t, axes, keepDims)
}

// Mean reduces by averaging. Integer and boolean inputs are promoted to the
// float dtype first.
func (b *Backend) Mean(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	tt := tensorOf(t)
	if !tt.shape.DType.IsFloat() && !tt.shape.DType.IsComplex() {
		tt = tensorOf(b.ToFloat(tt))
	}
	normalized := normalizeReduceAxes(tt.shape, axes)
	outShape, outIdx, count := reducePlan(tt.shape, normalized, keepDims)
	flat := dispatchReduce.dispatch(tt.shape.DType, reduceSum, tt.flat, outIdx, outShape.Size())
	sum := &Tensor{shape: outShape, flat: flat}
	divisor := fromComplex128([]complex128{complex(float64(count), 0)}, shapes.Shape{DType: outShape.DType, Dimensions: nil})
	return b.Div(sum, divisor)
}

// Std is the population standard deviation (no Bessel correction), matching
// NumPy's default. Complex inputs are not supported.
func (b *Backend) Std(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	tt := tensorOf(t)
	if tt.shape.DType.IsComplex() {
		panic(errNotImplementedf("Std for complex dtypes"))
	}
	if !tt.shape.DType.IsFloat() {
		tt = tensorOf(b.ToFloat(tt))
	}
	mean := b.Mean(tt, axes, true)
	diff := b.Sub(tt, mean)
	return b.Sqrt(b.Mean(b.Mul(diff, diff), axes, keepDims))
}

func (b *Backend) boolReduce(t backends.Tensor, axes []int, keepDims bool, and bool) backends.Tensor {
	bb := tensorOf(b.Cast(t, dtypes.Bool))
	normalized := normalizeReduceAxes(bb.shape, axes)
	outShape, outIdx, _ := reducePlan(bb.shape, normalized, keepDims)
	out := make([]bool, outShape.Size())
	if and {
		for i := range out {
			out[i] = true
		}
	}
	for i, v := range bb.flat.([]bool) {
		if and {
			out[outIdx[i]] = out[outIdx[i]] && v
		} else {
			out[outIdx[i]] = out[outIdx[i]] || v
		}
	}
	return &Tensor{shape: outShape, flat: out}
}

// Any reduces with logical-or; non-boolean inputs are tested against zero.
func (b *Backend) Any(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	return b.boolReduce(t, axes, keepDims, false)
}

// All reduces with logical-and; non-boolean inputs are tested against zero.
func (b *Backend) All(t backends.Tensor, axes []int, keepDims bool) backends.Tensor {
	return b.boolReduce(t, axes, keepDims, true)
}
