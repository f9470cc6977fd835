// Package colorspace converts tristimulus values into display and print
// colour spaces.
package colorspace

import (
	"errors"
	"fmt"
	"math"

	"cxf-converter/internal/spectral"
)

const (
	cieEpsilon = 216.0 / 24389.0
	cieKappa   = 24389.0 / 27.0

	// Linear sRGB values at or below this use the linear segment.
	gammaThreshold = 0.0031308

	// Below this 1-K every ink is reported as zero.
	cmykMinDivisor = 0.0001
)

var ErrUndefinedOKLab = errors.New("undefined oklab component")

type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type OKLab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type OKLCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// RGB holds gamma encoded sRGB channels in [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// CMYK holds integer percentages.
type CMYK struct {
	C int `json:"c"`
	M int `json:"m"`
	Y int `json:"y"`
	K int `json:"k"`
}

// XYZToLab normalizes by the white of the spectrum's own illuminant and
// observer.
func XYZToLab(xyz spectral.XYZ, ill spectral.Illuminant, obs spectral.Observer) (Lab, error) {
	white, err := spectral.WhitePoint(ill, obs)
	if err != nil {
		return Lab{}, err
	}
	fx := labF(xyz.X / white.X)
	fy := labF(xyz.Y / white.Y)
	fz := labF(xyz.Z / white.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}, nil
}

func labF(t float64) float64 {
	if t > cieEpsilon {
		return math.Cbrt(t)
	}
	return (cieKappa*t + 16) / 116
}

// XYZToOKLab adapts to D65 first; the OKLab matrices assume a D65 white.
func XYZToOKLab(xyz spectral.XYZ, ill spectral.Illuminant, obs spectral.Observer) (OKLab, error) {
	adapted, err := spectral.ToD65(xyz, ill, obs)
	if err != nil {
		return OKLab{}, err
	}
	lms := spectral.OKLabM1.MulVec(adapted.Vec())
	for i := range lms {
		lms[i] = math.Cbrt(lms[i])
	}
	v := spectral.OKLabM2.MulVec(lms)
	for i, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return OKLab{}, fmt.Errorf("%w: component %d is %v", ErrUndefinedOKLab, i, c)
		}
	}
	return OKLab{L: v[0], A: v[1], B: v[2]}, nil
}

// OKLabToOKLCH returns the hue in degrees within [0, 360).
func OKLabToOKLCH(c OKLab) OKLCH {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return OKLCH{L: c.L, C: math.Sqrt(c.A*c.A + c.B*c.B), H: h}
}

func XYZToSRGB(xyz spectral.XYZ, ill spectral.Illuminant, obs spectral.Observer) (RGB, error) {
	adapted, err := spectral.ToD65(xyz, ill, obs)
	if err != nil {
		return RGB{}, err
	}
	lin := spectral.XYZToLinearSRGB.MulVec(adapted.Vec())
	return RGB{
		R: GammaEncode(clamp01(lin[0])),
		G: GammaEncode(clamp01(lin[1])),
		B: GammaEncode(clamp01(lin[2])),
	}, nil
}

// GammaEncode applies the sRGB transfer function to a linear channel.
func GammaEncode(c float64) float64 {
	if c <= gammaThreshold {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func RGBToCMYK(c RGB) CMYK {
	k := 1 - math.Max(c.R, math.Max(c.G, c.B))
	divisor := 1 - k

	var cy, m, y float64
	if divisor >= cmykMinDivisor {
		cy = (1 - c.R - k) / divisor
		m = (1 - c.G - k) / divisor
		y = (1 - c.B - k) / divisor
	}
	return CMYK{
		C: percent(cy),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

func percent(v float64) int {
	return int(math.Floor(v * 100))
}

// RGBToHex formats c as #RRGGBB.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", To8(c.R), To8(c.G), To8(c.B))
}

// To8 scales a [0,1] channel to 0-255, rounding half away from zero.
func To8(v float64) uint8 {
	n := math.Round(v * 255)
	if n < 0 || math.IsNaN(n) {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
