package spectral

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch  = errors.New("spectrum length does not match reference tables")
	ErrZeroDenominator = errors.New("illuminant/observer normalization is zero")
)

// Integrate computes tristimulus values of a reflectance spectrum sampled on
// the canonical grid. The result is scaled so that a perfect reflector has
// Y = 1.
func Integrate(spectrum []float64, ill Illuminant, obs Observer) (XYZ, error) {
	illum, err := IlluminantCurve(ill)
	if err != nil {
		return XYZ{}, err
	}
	cmf, err := ObserverCurves(obs)
	if err != nil {
		return XYZ{}, err
	}
	if len(spectrum) != GridSize {
		return XYZ{}, fmt.Errorf("%w: got %d values, want %d", ErrLengthMismatch, len(spectrum), GridSize)
	}

	var denom, x, y, z float64
	for i, r := range spectrum {
		denom += cmf.Y[i] * illum[i]
		w := r * illum[i]
		x += w * cmf.X[i]
		y += w * cmf.Y[i]
		z += w * cmf.Z[i]
	}
	if denom == 0 {
		return XYZ{}, fmt.Errorf("%w: %v/%v", ErrZeroDenominator, ill, obs)
	}
	return XYZ{X: x / denom, Y: y / denom, Z: z / denom}, nil
}

// IntegratedWhite is the white point obtained by integrating a perfect
// reflector. It differs from WhitePoint only by table truncation.
func IntegratedWhite(ill Illuminant, obs Observer) (XYZ, error) {
	ones := make([]float64, GridSize)
	for i := range ones {
		ones[i] = 1
	}
	return Integrate(ones, ill, obs)
}
