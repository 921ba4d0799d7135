// Package analysis provides post-run diagnostics: spectra of the
// stick-slip cycle and phase portraits of the recorded trajectory.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the radix-2 discrete Fourier transform. The input
// length must be a power of two; use Pad first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}
	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// Pad zero-extends data to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the one-sided magnitude spectrum of data after
// mean removal and a Hann window. Friction-force traces carry a large
// constant component during slip; without the mean removal it buries
// the stick-slip line.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	windowed := make([]float64, len(data))

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := float64(len(data) - 1)
	for i, v := range data {
		hann := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/n))
		windowed[i] = (v - mean) * hann
	}

	fft := FFT(Pad(windowed))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the strongest spectral line of data in Hz
// given the sampling step dt, ignoring the zero bin.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	// The padded transform has 2·len(ps) bins at sample rate 1/dt.
	return float64(maxIdx) / (float64(2*len(ps)) * dt)
}
