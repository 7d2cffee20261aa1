package purego

import (
	"github.com/fluidml/fluidml/backends"
	"github.com/fluidml/fluidml/types/shapes"
	"github.com/gomlx/exceptions"
)

// Conv computes the n-dimensional convolution (cross-correlation, stride 1) of
// t (batch, spatial..., inChannels) with kernel (kernelSpatial..., inChannels,
// outChannels). The computation runs channels-first internally.
func (b *Backend) Conv(t, kernel backends.Tensor, padding backends.ConvPadding) backends.Tensor {
	in := tensorOf(t)
	k := tensorOf(kernel)
	d := in.shape.Rank() - 2
	if d < 1 || d > 3 {
		panic(errNotImplementedf("Conv with %d spatial dimensions (input %s)", d, in.shape))
	}
	if in.shape.DType.IsComplex() || k.shape.DType.IsComplex() {
		panic(errNotImplementedf("Conv for complex dtypes"))
	}
	if k.shape.Rank() != d+2 {
		exceptions.Panicf("purego: Conv kernel %s doesn't match input %s (want rank %d)", k.shape, in.shape, d+2)
	}
	kSpatial := k.shape.Dimensions[:d]
	inC := k.shape.Dimensions[d]
	outC := k.shape.Dimensions[d+1]
	if in.shape.Dimensions[d+1] != inC {
		exceptions.Panicf("purego: Conv input %s has %d channels, kernel %s expects %d",
			in.shape, in.shape.Dimensions[d+1], k.shape, inC)
	}
	cast := b.AutoCast(b.ToFloat(in), b.ToFloat(k))
	in, k = tensorOf(cast[0]), tensorOf(cast[1])

	x := tensorOf(b.ChannelsFirst(in)) // (batch, inC, spatial...)
	if padding == backends.ConvPaddingSame {
		spec := make(backends.PadSpec, x.shape.Rank())
		for a, ksz := range kSpatial {
			spec[2+a] = backends.ConstPad((ksz-1)/2, ksz/2, 0)
		}
		x = tensorOf(b.Pad(x, spec))
	}
	// Kernel goes to (outC, inC, kernelSpatial...).
	perm := make([]int, 0, d+2)
	perm = append(perm, d+1, d)
	for a := 0; a < d; a++ {
		perm = append(perm, a)
	}
	k = tensorOf(b.Transpose(k, perm))

	batch := x.shape.Dimensions[0]
	outSpatial := make([]int, d)
	for a := 0; a < d; a++ {
		outSpatial[a] = x.shape.Dimensions[2+a] - kSpatial[a] + 1
		if outSpatial[a] <= 0 {
			exceptions.Panicf("purego: Conv kernel %s larger than input %s", k.shape, in.shape)
		}
	}
	outDims := append([]int{batch, outC}, outSpatial...)
	outShape := shapes.Make(x.shape.DType, outDims...)

	xData := toFloat64(x)
	kData := toFloat64(k)
	xStrides := x.shape.Strides()
	kStrides := k.shape.Strides()
	kVolume := 1
	for _, ksz := range kSpatial {
		kVolume *= ksz
	}
	outVolume := 1
	for _, dim := range outSpatial {
		outVolume *= dim
	}
	acc := make([]float64, outShape.Size())
	outPos := make([]int, d)
	kPos := make([]int, d)
	dst := 0
	for bi := 0; bi < batch; bi++ {
		for oc := 0; oc < outC; oc++ {
			for a := range outPos {
				outPos[a] = 0
			}
			for p := 0; p < outVolume; p++ {
				sum := 0.0
				for ic := 0; ic < inC; ic++ {
					xBase := bi*xStrides[0] + ic*xStrides[1]
					kBase := oc*kStrides[0] + ic*kStrides[1]
					for a := range kPos {
						kPos[a] = 0
					}
					for q := 0; q < kVolume; q++ {
						xOff, kOff := xBase, kBase
						for a := 0; a < d; a++ {
							xOff += (outPos[a] + kPos[a]) * xStrides[2+a]
							kOff += kPos[a] * kStrides[2+a]
						}
						sum += xData[xOff] * kData[kOff]
						incrCoord(kPos, kSpatial)
					}
				}
				acc[dst] = sum
				dst++
				incrCoord(outPos, outSpatial)
			}
		}
	}
	return b.ChannelsLast(fromFloat64(acc, outShape))
}
