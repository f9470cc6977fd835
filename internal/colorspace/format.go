package colorspace

import (
	"math"
	"strconv"
	"strings"
)

// Display names of the result rows.
const (
	SpaceSRGB  = "sRGB"
	SpaceCMYK  = "CMYK"
	SpaceLab   = "CIELab"
	SpaceOKLab = "OKLab (Lightness, a-axis, b-axis)"
	SpaceOKLCH = "OKLCH (Lightness, Chroma, Hue)"
	SpaceHEX   = "HEX"
)

// Round2 rounds half away from zero to two decimals, working on the shortest
// decimal form of v so that 1.005 becomes 1.01.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e15 {
		return v
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(math.Abs(v), 'f', -1, 64), ".")
	if len(frac) <= 2 {
		return v
	}
	n, err := strconv.ParseInt(whole+frac[:2], 10, 64)
	if err != nil {
		return math.Round(v*100) / 100
	}
	if frac[2] >= '5' {
		n++
	}
	r := float64(n) / 100
	if v < 0 {
		r = -r
	}
	return r
}

// FormatNumber prints v rounded to two decimals in its shortest form.
func FormatNumber(v float64) string {
	r := Round2(v)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func join(parts ...string) string {
	return strings.Join(parts, ",")
}

// FormatSRGB prints 0-255 integers.
func FormatSRGB(c RGB) string {
	return join(
		strconv.Itoa(int(To8(c.R))),
		strconv.Itoa(int(To8(c.G))),
		strconv.Itoa(int(To8(c.B))),
	)
}

func FormatCMYK(c CMYK) string {
	return join(
		strconv.Itoa(c.C)+"%",
		strconv.Itoa(c.M)+"%",
		strconv.Itoa(c.Y)+"%",
		strconv.Itoa(c.K)+"%",
	)
}

func FormatLab(c Lab) string {
	return join(FormatNumber(c.L), FormatNumber(c.A), FormatNumber(c.B))
}

// FormatOKLab prints lightness as a percentage.
func FormatOKLab(c OKLab) string {
	return join(FormatNumber(c.L*100)+"%", FormatNumber(c.A), FormatNumber(c.B))
}

func FormatOKLCH(c OKLCH) string {
	return join(FormatNumber(c.L*100)+"%", FormatNumber(c.C), FormatNumber(c.H))
}
