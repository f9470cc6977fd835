package colorspace

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"cxf-converter/internal/spectral"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestXYZToLabWhiteIsNeutral(t *testing.T) {
	for _, ill := range []spectral.Illuminant{spectral.D50, spectral.D65} {
		for _, obs := range []spectral.Observer{spectral.Observer2, spectral.Observer10} {
			w, _ := spectral.WhitePoint(ill, obs)
			lab, err := XYZToLab(w, ill, obs)
			if err != nil {
				t.Fatal(err)
			}
			if !near(lab.L, 100, 1e-9) || !near(lab.A, 0, 1e-9) || !near(lab.B, 0, 1e-9) {
				t.Errorf("%v/%v: white Lab = %+v", ill, obs, lab)
			}
		}
	}
}

func TestXYZToLabMatchesColorful(t *testing.T) {
	tests := []struct {
		xyz spectral.XYZ
		ill spectral.Illuminant
		obs spectral.Observer
	}{
		{spectral.XYZ{X: 0.2, Y: 0.3, Z: 0.4}, spectral.D50, spectral.Observer2},
		{spectral.XYZ{X: 0.001, Y: 0.002, Z: 0.003}, spectral.D65, spectral.Observer10},
		{spectral.XYZ{X: 0.7, Y: 0.5, Z: 0.1}, spectral.D65, spectral.Observer2},
		{spectral.XYZ{X: 0.05, Y: 0.004, Z: 0.6}, spectral.D50, spectral.Observer10},
	}
	for _, tt := range tests {
		w, _ := spectral.WhitePoint(tt.ill, tt.obs)
		l, a, b := colorful.XyzToLabWhiteRef(tt.xyz.X, tt.xyz.Y, tt.xyz.Z, [3]float64{w.X, w.Y, w.Z})
		got, err := XYZToLab(tt.xyz, tt.ill, tt.obs)
		if err != nil {
			t.Fatal(err)
		}
		if !near(got.L, l*100, 1e-6) || !near(got.A, a*100, 1e-6) || !near(got.B, b*100, 1e-6) {
			t.Errorf("%+v: got %+v, colorful (%f, %f, %f)", tt.xyz, got, l*100, a*100, b*100)
		}
	}
}

func TestXYZToLabKnownValue(t *testing.T) {
	got, err := XYZToLab(spectral.XYZ{X: 0.2, Y: 0.3, Z: 0.4}, spectral.D50, spectral.Observer2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got.L, 61.6542, 1e-3) || !near(got.A, -38.7397, 1e-3) || !near(got.B, -23.2400, 1e-3) {
		t.Fatalf("unexpected Lab: %+v", got)
	}
}

func TestXYZToOKLab(t *testing.T) {
	white, _ := spectral.WhitePoint(spectral.D65, spectral.Observer2)
	got, err := XYZToOKLab(white, spectral.D65, spectral.Observer2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(got.L, 1, 1e-4) || !near(got.A, 0, 1e-3) || !near(got.B, 0, 1e-3) {
		t.Fatalf("D65 white OKLab = %+v", got)
	}

	// sRGB red primary.
	red, err := XYZToOKLab(spectral.XYZ{X: 0.4124, Y: 0.2126, Z: 0.0193}, spectral.D65, spectral.Observer2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(red.L, 0.6279, 1e-3) || !near(red.A, 0.2249, 1e-3) || !near(red.B, 0.1258, 1e-3) {
		t.Fatalf("red OKLab = %+v", red)
	}
}

func TestXYZToOKLabAdaptsD50(t *testing.T) {
	white, _ := spectral.WhitePoint(spectral.D50, spectral.Observer2)
	got, err := XYZToOKLab(white, spectral.D50, spectral.Observer2)
	if err != nil {
		t.Fatal(err)
	}
	// The D50 white must land on the D65 white after adaptation.
	if !near(got.L, 1, 1e-4) || !near(got.A, 0, 1e-3) || !near(got.B, 0, 1e-3) {
		t.Fatalf("adapted D50 white OKLab = %+v", got)
	}
}

func TestXYZToOKLabUndefined(t *testing.T) {
	_, err := XYZToOKLab(spectral.XYZ{X: math.NaN(), Y: 0.2, Z: 0.1}, spectral.D65, spectral.Observer2)
	if !errors.Is(err, ErrUndefinedOKLab) {
		t.Fatalf("expected ErrUndefinedOKLab, got %v", err)
	}
}

func TestOKLabToOKLCHHueWraps(t *testing.T) {
	tests := []struct {
		a, b  float64
		wantH float64
		wantC float64
	}{
		{1, 0, 0, 1},
		{0, 1, 90, 1},
		{-1, 0, 180, 1},
		{-1, -1, 225, math.Sqrt2},
		{0, -1, 270, 1},
		{1, -1e-9, 360 - 1e-9*180/math.Pi, 1},
	}
	for _, tt := range tests {
		got := OKLabToOKLCH(OKLab{L: 0.5, A: tt.a, B: tt.b})
		if got.H < 0 || got.H >= 360 {
			t.Errorf("a=%v b=%v: hue %v outside [0,360)", tt.a, tt.b, got.H)
		}
		if !near(got.H, tt.wantH, 1e-9) {
			t.Errorf("a=%v b=%v: hue %v, want %v", tt.a, tt.b, got.H, tt.wantH)
		}
		if !near(got.C, tt.wantC, 1e-9) {
			t.Errorf("a=%v b=%v: chroma %v, want %v", tt.a, tt.b, got.C, tt.wantC)
		}
		if got.L != 0.5 {
			t.Errorf("lightness changed: %v", got.L)
		}
	}

	third := OKLabToOKLCH(OKLab{A: -1, B: -1})
	if third.H <= 180 || third.H >= 270 {
		t.Fatalf("third quadrant hue %v", third.H)
	}
}

func TestGammaEncodeBoundary(t *testing.T) {
	const th = 0.0031308
	lower := 12.92 * th
	upper := 1.055*math.Pow(th, 1/2.4) - 0.055
	if !near(GammaEncode(th), lower, 1e-15) {
		t.Fatalf("threshold uses wrong segment: %v", GammaEncode(th))
	}
	if !near(lower, upper, 1e-7) {
		t.Fatalf("segments disagree at threshold: %v vs %v", lower, upper)
	}
	below := GammaEncode(th - 1e-9)
	above := GammaEncode(th + 1e-9)
	if !near(below, 12.92*(th-1e-9), 1e-15) {
		t.Fatalf("below threshold: %v", below)
	}
	if !near(above, 1.055*math.Pow(th+1e-9, 1/2.4)-0.055, 1e-15) {
		t.Fatalf("above threshold: %v", above)
	}
	if !near(below, above, 1e-7) {
		t.Fatalf("discontinuity: %v vs %v", below, above)
	}
	if GammaEncode(0) != 0 || !near(GammaEncode(1), 1, 1e-12) {
		t.Fatalf("unexpected end points: %v %v", GammaEncode(0), GammaEncode(1))
	}
}

func TestXYZToSRGBRange(t *testing.T) {
	tests := []spectral.XYZ{
		{X: 2, Y: 2, Z: 2},
		{X: 0, Y: 0, Z: 1},
		{X: 0.4124, Y: 0.2126, Z: 0.0193},
		{X: -0.1, Y: 0, Z: 0},
	}
	for _, xyz := range tests {
		for _, ill := range []spectral.Illuminant{spectral.D50, spectral.D65} {
			c, err := XYZToSRGB(xyz, ill, spectral.Observer2)
			if err != nil {
				t.Fatal(err)
			}
			for _, v := range []float64{c.R, c.G, c.B} {
				if v < 0 || v > 1 {
					t.Errorf("%+v under %v: channel %v outside [0,1]", xyz, ill, v)
				}
			}
		}
	}
}

func TestXYZToSRGBMidGray(t *testing.T) {
	c, err := XYZToSRGB(spectral.XYZ{X: 0.18, Y: 0.18, Z: 0.18}, spectral.D65, spectral.Observer2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(c.R, 0.50305, 1e-4) || !near(c.G, 0.45006, 1e-4) || !near(c.B, 0.44117, 1e-4) {
		t.Fatalf("unexpected sRGB: %+v", c)
	}
}

func TestRGBToCMYK(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want CMYK
	}{
		{"white", RGB{1, 1, 1}, CMYK{0, 0, 0, 0}},
		{"black", RGB{0, 0, 0}, CMYK{0, 0, 0, 100}},
		{"red", RGB{1, 0, 0}, CMYK{0, 100, 100, 0}},
		{"near black", RGB{0.00005, 0.00001, 0}, CMYK{0, 0, 0, 99}},
		{"half cyan", RGB{0.25, 0.5, 0.5}, CMYK{50, 0, 0, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToCMYK(tt.in); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		in   RGB
		want string
	}{
		{RGB{1, 1, 1}, "#FFFFFF"},
		{RGB{0, 0, 0}, "#000000"},
		{RGB{1, 0.5, 0}, "#FF8000"},
		{RGB{1.2, -0.1, 0.0392}, "#FF000A"},
	}
	for _, tt := range tests {
		if got := RGBToHex(tt.in); got != tt.want {
			t.Errorf("%+v: got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatNumber(12.3456), "12.35"},
		{FormatNumber(100), "100"},
		{FormatNumber(-3.14159), "-3.14"},
		{FormatNumber(-0.001), "0"},
		{FormatNumber(0.5), "0.5"},
		{FormatNumber(1.005), "1.01"},
		{FormatNumber(0.285), "0.29"},
		{FormatNumber(2.675), "2.68"},
		{FormatNumber(-0.005), "-0.01"},
		{FormatNumber(-1.004), "-1"},
		{FormatSRGB(RGB{1, 0.5, 0}), "255,128,0"},
		{FormatCMYK(CMYK{1, 2, 3, 4}), "1%,2%,3%,4%"},
		{FormatLab(Lab{L: 100, A: -0.0464, B: 0.0633}), "100,-0.05,0.06"},
		{FormatOKLab(OKLab{L: 0.62793, A: 0.2249, B: 0.1258}), "62.79%,0.22,0.13"},
		{FormatOKLCH(OKLCH{L: 0.62793, C: 0.25768, H: 29.2232}), "62.79%,0.26,29.22"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
