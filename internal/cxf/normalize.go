package cxf

import (
	"fmt"
	"math"

	"cxf-converter/internal/spectral"
)

// maxGridPoints bounds the normalized length; a 1 nm step needs 491.
const maxGridPoints = 4096

// Normalize maps raw samples onto a grid spanning 340-830 nm at the native
// step. Grid points outside the measured range repeat the nearest measured
// sample; nothing is interpolated.
func Normalize(raw []float64, startWL, step float64) ([]float64, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySpectrum
	}
	if math.IsNaN(startWL) || startWL < spectral.MinWavelength || startWL > spectral.MaxWavelength {
		return nil, fmt.Errorf("%w: got %v", ErrWavelengthRange, startWL)
	}
	if math.IsNaN(step) || step <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrStep, step)
	}

	span := (spectral.MaxWavelength - spectral.MinWavelength) / step
	if math.IsInf(span, 0) || span >= maxGridPoints {
		return nil, fmt.Errorf("%w: step %v yields more than %d grid points", ErrStep, step, maxGridPoints)
	}
	total := int(math.Floor(span)) + 1
	offset := int(math.Round((startWL - spectral.MinWavelength) / step))
	last := offset + len(raw) - 1

	out := make([]float64, total)
	for i := range out {
		switch {
		case i < offset:
			out[i] = raw[0]
		case i > last:
			out[i] = raw[len(raw)-1]
		default:
			out[i] = raw[i-offset]
		}
	}
	return out, nil
}
