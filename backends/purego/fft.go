package purego

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/fluidml/fluidml/backends"
)

// The Fourier transforms act over the spatial axes, i.e. every axis except the
// first (batch) and the last (channels). Tensors without spatial axes pass
// through unchanged.

// fftAxis runs an in-place 1D transform along one axis for every line of data.
func fftAxis(data []complex128, dims []int, axis int, inverse bool) {
	n := dims[axis]
	outer, inner := 1, 1
	for a := 0; a < axis; a++ {
		outer *= dims[a]
	}
	for a := axis + 1; a < len(dims); a++ {
		inner *= dims[a]
	}
	fft := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	out := make([]complex128, n)
	scale := complex(1/float64(n), 0)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*n*inner + i
			for j := 0; j < n; j++ {
				line[j] = data[base+j*inner]
			}
			if inverse {
				// Sequence is unnormalized: Sequence(Coefficients(x)) == n*x.
				out = fft.Sequence(out, line)
				for j := 0; j < n; j++ {
					data[base+j*inner] = out[j] * scale
				}
				continue
			}
			out = fft.Coefficients(out, line)
			for j := 0; j < n; j++ {
				data[base+j*inner] = out[j]
			}
		}
	}
}

func (b *Backend) fourierTransform(t backends.Tensor, inverse bool) backends.Tensor {
	tt := tensorOf(b.ToComplex(t, nil))
	rank := tt.shape.Rank()
	if rank < 3 {
		return tt.Copy()
	}
	data := toComplex128(tt)
	for axis := 1; axis < rank-1; axis++ {
		fftAxis(data, tt.shape.Dimensions, axis, inverse)
	}
	return fromComplex128(data, tt.shape.Clone())
}

// FFT computes the forward discrete Fourier transform over the spatial axes.
// Non-complex input is promoted to the canonical complex dtype first.
func (b *Backend) FFT(t backends.Tensor) backends.Tensor {
	return b.fourierTransform(t, false)
}

// IFFT is the inverse of FFT, normalized so that IFFT(FFT(x)) == x.
func (b *Backend) IFFT(t backends.Tensor) backends.Tensor {
	return b.fourierTransform(t, true)
}
