package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of data
// after removing its mean.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in Hz of samples
// taken every dt seconds, or 0 when there is none.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	if maxIdx == 0 || dt <= 0 {
		return 0
	}
	return float64(maxIdx) / (float64(len(data)) * dt)
}

// SwingPeriod is the period in seconds of the dominant oscillation, or 0.
func SwingPeriod(angles []float64, dt float64) float64 {
	f := DominantFrequency(angles, dt)
	if f == 0 {
		return 0
	}
	return 1 / f
}
