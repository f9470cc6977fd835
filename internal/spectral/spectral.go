// Package spectral holds the CIE reference data and turns reflectance
// spectra into tristimulus values.
package spectral

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinWavelength = 340
	MaxWavelength = 830
	GridStep      = 10
	GridSize      = (MaxWavelength-MinWavelength)/GridStep + 1
)

var (
	ErrUnknownIlluminant = errors.New("unknown illuminant")
	ErrUnknownObserver   = errors.New("unknown observer")
)

// Curve is one value per grid wavelength; index i is 340 + 10*i nm.
type Curve [GridSize]float64

// Wavelength returns the wavelength in nm of grid index i.
func Wavelength(i int) int {
	return MinWavelength + i*GridStep
}

// CMF is a standard observer's colour-matching functions.
type CMF struct {
	X, Y, Z Curve
}

type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (c XYZ) Vec() Vec3 {
	return Vec3{c.X, c.Y, c.Z}
}

func XYZFromVec(v Vec3) XYZ {
	return XYZ{X: v[0], Y: v[1], Z: v[2]}
}

type Illuminant int

const (
	D50 Illuminant = iota + 1
	D65
)

func (i Illuminant) String() string {
	switch i {
	case D50:
		return "d50"
	case D65:
		return "d65"
	default:
		return "illuminant(" + strconv.Itoa(int(i)) + ")"
	}
}

func (i Illuminant) MarshalText() ([]byte, error) {
	if i != D50 && i != D65 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIlluminant, int(i))
	}
	return []byte(i.String()), nil
}

// ParseIlluminant matches "D50" or "D65" anywhere in s, ignoring case.
func ParseIlluminant(s string) (Illuminant, error) {
	u := strings.ToUpper(s)
	hasD50 := strings.Contains(u, "D50")
	hasD65 := strings.Contains(u, "D65")
	switch {
	case hasD50 && !hasD65:
		return D50, nil
	case hasD65 && !hasD50:
		return D65, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownIlluminant, s)
	}
}

type Observer int

const (
	Observer2 Observer = iota + 1
	Observer10
)

func (o Observer) String() string {
	switch o {
	case Observer2:
		return "2"
	case Observer10:
		return "10"
	default:
		return "observer(" + strconv.Itoa(int(o)) + ")"
	}
}

func (o Observer) MarshalText() ([]byte, error) {
	if o != Observer2 && o != Observer10 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownObserver, int(o))
	}
	return []byte(o.String()), nil
}

// ParseObserver reads the numeric prefix of values such as "2_Degree",
// "10 deg" or "10".
func ParseObserver(s string) (Observer, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	switch s[:end] {
	case "2":
		return Observer2, nil
	case "10":
		return Observer10, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownObserver, s)
	}
}

func IlluminantCurve(ill Illuminant) (Curve, error) {
	switch ill {
	case D50:
		return illuminantD50, nil
	case D65:
		return illuminantD65, nil
	default:
		return Curve{}, fmt.Errorf("%w: %v", ErrUnknownIlluminant, ill)
	}
}

func ObserverCurves(obs Observer) (CMF, error) {
	switch obs {
	case Observer2:
		return cmf2, nil
	case Observer10:
		return cmf10, nil
	default:
		return CMF{}, fmt.Errorf("%w: %v", ErrUnknownObserver, obs)
	}
}

// WhitePoint returns the published reference white of ill viewed by obs.
func WhitePoint(ill Illuminant, obs Observer) (XYZ, error) {
	switch {
	case ill == D50 && obs == Observer2:
		return whiteD50Observer2, nil
	case ill == D50 && obs == Observer10:
		return whiteD50Observer10, nil
	case ill == D65 && obs == Observer2:
		return whiteD65Observer2, nil
	case ill == D65 && obs == Observer10:
		return whiteD65Observer10, nil
	case ill != D50 && ill != D65:
		return XYZ{}, fmt.Errorf("%w: %v", ErrUnknownIlluminant, ill)
	default:
		return XYZ{}, fmt.Errorf("%w: %v", ErrUnknownObserver, obs)
	}
}
