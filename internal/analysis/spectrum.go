// Package analysis turns a run's saved MetricFrame trace into
// frequency-domain summaries, the way a stability engineer would look
// for a periodic energy residual the aggregate metrics alone wouldn't
// reveal.
package analysis

import (
	"math"
	"math/cmplx"
)

// fft computes the discrete Fourier transform of data via the
// recursive Cooley-Tukey algorithm. len(data) must be a power of two.
func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fEven := fft(even)
	fOdd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = fEven[k] + w*fOdd[k]
		result[k+n/2] = fEven[k] - w*fOdd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude of the positive-frequency half
// of data's Fourier transform. data is zero-padded up to the next
// power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	transformed := fft(padded)
	ps := make([]float64, len(transformed)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(transformed[i])
	}
	return ps
}
