package purego

import (
	"math"

	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Resample looks up linearly interpolated values of inputs at the coordinates
// in sampleCoords. inputs is (batch, spatial..., channels); sampleCoords is
// (batch, outSpatial..., d) with d the number of spatial axes of inputs, and
// the result is (batch, outSpatial..., channels).
//
// Only linear interpolation with constant value 0 is supported.
func (b *Backend) Resample(inputs, sampleCoords backends.Tensor, interpolation backends.Interpolation, boundary backends.Boundary, constantValue float64) backends.Tensor {
	if interpolation != backends.InterpolationLinear {
		panic(errors.Wrapf(backends.ErrUnsupportedParams, "Resample interpolation %s", interpolation))
	}
	if boundary == backends.BoundaryConstant && constantValue != 0 {
		panic(errors.Wrapf(backends.ErrUnsupportedParams, "Resample constant boundary with value %v", constantValue))
	}
	in := tensorOf(inputs)
	if in.shape.DType.IsComplex() {
		// Sample real and imaginary parts independently.
		re := b.Resample(b.Real(in), sampleCoords, interpolation, boundary, constantValue)
		im := b.Resample(b.Imag(in), sampleCoords, interpolation, boundary, constantValue)
		return b.ToComplex(re, im)
	}
	if !in.shape.DType.IsFloat() {
		in = tensorOf(b.ToFloat(in))
	}
	rank := in.shape.Rank()
	if rank < 3 {
		exceptions.Panicf("purego: Resample inputs need rank >= 3 (batch, spatial..., channels), got %s", in.shape)
	}
	batch := in.shape.Dimensions[0]
	spatial := in.shape.Dimensions[1 : rank-1]
	channels := in.shape.Dimensions[rank-1]
	d := len(spatial)

	cs := tensorOf(sampleCoords)
	csRank := cs.shape.Rank()
	if csRank < 2 || cs.shape.Dimensions[csRank-1] != d || cs.shape.Dimensions[0] != batch {
		exceptions.Panicf("purego: Resample coordinates %s don't match inputs %s (want batch %d and %d components)",
			cs.shape, in.shape, batch, d)
	}
	coords := toFloat64(cs)
	outSpatial := cs.shape.Dimensions[1 : csRank-1]
	numOut := 1
	for _, dim := range outSpatial {
		numOut *= dim
	}
	outDims := make([]int, 0, csRank)
	outDims = append(outDims, batch)
	outDims = append(outDims, outSpatial...)
	outDims = append(outDims, channels)
	outShape := shapes.Shape{DType: in.shape.DType, Dimensions: outDims}

	data := toFloat64(in)
	inStrides := in.shape.Strides()
	out := make([]float64, outShape.Size())
	lo := make([]int, d)
	frac := make([]float64, d)
	for bi := 0; bi < batch; bi++ {
		coordBase := bi * numOut * d
		outBase := bi * numOut * channels
		for p := 0; p < numOut; p++ {
			for a := 0; a < d; a++ {
				c := coords[coordBase+p*d+a]
				f := math.Floor(c)
				lo[a] = int(f)
				frac[a] = c - f
			}
			for corner := 0; corner < 1<<d; corner++ {
				weight := 1.0
				srcOff := bi * inStrides[0]
				oob := false
				for a := 0; a < d; a++ {
					idx := lo[a]
					w := 1 - frac[a]
					if corner>>a&1 == 1 {
						idx++
						w = frac[a]
					}
					switch boundary {
					case backends.BoundaryConstant:
						if idx < 0 || idx >= spatial[a] {
							oob = true
						}
					case backends.BoundaryReplicate:
						idx = min(max(idx, 0), spatial[a]-1)
					case backends.BoundaryCircular:
						idx = ((idx % spatial[a]) + spatial[a]) % spatial[a]
					}
					if oob {
						break
					}
					weight *= w
					srcOff += idx * inStrides[1+a]
				}
				if oob || weight == 0 {
					continue // constant boundary contributes 0
				}
				dst := outBase + p*channels
				for ch := 0; ch < channels; ch++ {
					out[dst+ch] += weight * data[srcOff+ch]
				}
			}
		}
	}
	return fromFloat64(out, outShape)
}
