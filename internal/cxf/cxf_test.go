package cxf

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cxf-converter/internal/spectral"
)

func flat(n int, v string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = v
	}
	return strings.Join(parts, " ")
}

const specsD65 = `
  <cc:ColorSpecificationCollection>
    <cc:ColorSpecification Id="CS_D65_2">
      <cc:TristimulusSpec>
        <cc:Illuminant>D65</cc:Illuminant>
        <cc:Observer>2_Degree</cc:Observer>
        <cc:Method>E308_Table5</cc:Method>
      </cc:TristimulusSpec>
      <cc:MeasurementSpec>
        <cc:MeasurementType>Spectrum_Reflectance</cc:MeasurementType>
        <cc:WavelengthRange StartWL="340" Increment="10"/>
      </cc:MeasurementSpec>
    </cc:ColorSpecification>
    <cc:ColorSpecification Id="CS_D50_10">
      <cc:TristimulusSpec>
        <cc:Illuminant>CIE D50</cc:Illuminant>
        <cc:Observer>10 Degree</cc:Observer>
      </cc:TristimulusSpec>
      <cc:MeasurementSpec>
        <cc:WavelengthRange StartWL="400" Increment="10"/>
      </cc:MeasurementSpec>
    </cc:ColorSpecification>
  </cc:ColorSpecificationCollection>`

func wrap(objects, specs string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<cc:CxF xmlns:cc="http://colorexchangeformat.com/CxF3-core">
 <cc:Resources>
  <cc:ObjectCollection>` + objects + `
  </cc:ObjectCollection>` + specs + `
 </cc:Resources>
</cc:CxF>`)
}

func target(objectType, name, spec, values string) string {
	return `
   <cc:Object ObjectType="` + objectType + `" Name="` + name + `" Id="o-` + name + `">
    <cc:ColorValues>
     <cc:ReflectanceSpectrum ColorSpecification="` + spec + `">` + values + `</cc:ReflectanceSpectrum>
    </cc:ColorValues>
   </cc:Object>`
}

func TestNormalizeIdentityOnCanonicalGrid(t *testing.T) {
	raw := make([]float64, spectral.GridSize)
	for i := range raw {
		raw[i] = float64(i) / 100
	}
	got, err := Normalize(raw, 340, 10)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if diff := cmp.Diff(raw, got); diff != "" {
		t.Fatalf("normalized grid differs (-want +got):\n%s", diff)
	}
}

func TestNormalizeExtendsEdges(t *testing.T) {
	got, err := Normalize([]float64{0.1, 0.2, 0.3}, 360, 10)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(got) != spectral.GridSize {
		t.Fatalf("len = %d, want %d", len(got), spectral.GridSize)
	}
	want := make([]float64, spectral.GridSize)
	for i := range want {
		want[i] = 0.3
	}
	want[0], want[1], want[2], want[3] = 0.1, 0.1, 0.1, 0.2
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized grid differs (-want +got):\n%s", diff)
	}
}

func TestNormalizeTruncatesPastGrid(t *testing.T) {
	raw := make([]float64, 60)
	for i := range raw {
		raw[i] = float64(i)
	}
	got, err := Normalize(raw, 340, 10)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(got) != spectral.GridSize || got[spectral.GridSize-1] != 49 {
		t.Fatalf("unexpected tail: len=%d last=%v", len(got), got[len(got)-1])
	}
}

func TestNormalizeNonCanonicalStep(t *testing.T) {
	got, err := Normalize([]float64{1, 2}, 340, 20)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(got) != 25 {
		t.Fatalf("len = %d, want 25", len(got))
	}

	got, err = Normalize([]float64{1}, 340, 1)
	if err != nil {
		t.Fatalf("Normalize 1nm: %v", err)
	}
	if len(got) != 491 {
		t.Fatalf("len = %d, want 491", len(got))
	}
}

func TestNormalizeErrors(t *testing.T) {
	cases := []struct {
		name  string
		raw   []float64
		start float64
		step  float64
		want  error
	}{
		{"empty", nil, 340, 10, ErrEmptySpectrum},
		{"start below range", []float64{1}, 300, 10, ErrWavelengthRange},
		{"start above range", []float64{1}, 840, 10, ErrWavelengthRange},
		{"zero step", []float64{1}, 340, 0, ErrStep},
		{"negative step", []float64{1}, 340, -10, ErrStep},
		{"nanometre fraction step", []float64{1}, 340, 1e-9, ErrStep},
		{"denormal step", []float64{1}, 340, 1e-300, ErrStep},
		{"nan step", []float64{1}, 340, math.NaN(), ErrStep},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.raw, tc.start, tc.step)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrData) {
				t.Fatalf("err %v does not match ErrData", err)
			}
		})
	}
}

func TestParseMultipleSpectraInOrder(t *testing.T) {
	objects := target("Target", "Paper White", "CS_D65_2", flat(50, "1")) +
		target("Substrate", "Base", "CS_D65_2", flat(50, "0.9")) +
		target("Standard", "Ink", "CS_D50_10", flat(3, "0.25"))
	doc, err := Parse(wrap(objects, specsD65))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", doc.Warnings)
	}
	if len(doc.Spectra) != 2 {
		t.Fatalf("got %d spectra, want 2", len(doc.Spectra))
	}

	type cond struct {
		Name       string
		ID         string
		Illuminant spectral.Illuminant
		Observer   spectral.Observer
		StartWL    float64
		Step       float64
		Len        int
	}
	got := make([]cond, 0, len(doc.Spectra))
	for _, s := range doc.Spectra {
		got = append(got, cond{s.Name, s.ID, s.Illuminant, s.Observer, s.StartWL, s.Step, len(s.Values)})
	}
	want := []cond{
		{"Paper White", "CS_D65_2", spectral.D65, spectral.Observer2, 340, 10, 50},
		{"Ink", "CS_D50_10", spectral.D50, spectral.Observer10, 400, 10, 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("spectra differ (-want +got):\n%s", diff)
	}
	if doc.Spectra[1].Values[0] != 0.25 || doc.Spectra[1].Values[49] != 0.25 {
		t.Fatalf("edge extension not applied: %v", doc.Spectra[1].Values)
	}
}

func TestParseWithoutNamespacePrefix(t *testing.T) {
	data := strings.ReplaceAll(string(wrap(target("Target", "A", "CS_D65_2", flat(50, "0.5")), specsD65)), "cc:", "")
	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Spectra) != 1 || doc.Spectra[0].Values[10] != 0.5 {
		t.Fatalf("unexpected spectra: %+v", doc.Spectra)
	}
}

func TestParseSkipsUnresolvedSpecification(t *testing.T) {
	objects := target("Target", "Known", "CS_D65_2", flat(50, "0.5")) +
		target("Target", "Orphan", "CS_MISSING", flat(50, "0.5"))
	doc, err := Parse(wrap(objects, specsD65))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Spectra) != 1 || doc.Spectra[0].Name != "Known" {
		t.Fatalf("unexpected spectra: %+v", doc.Spectra)
	}
	if len(doc.Warnings) != 1 || !strings.Contains(doc.Warnings[0], "CS_MISSING") {
		t.Fatalf("unexpected warnings: %v", doc.Warnings)
	}
}

func TestParseAllUnresolved(t *testing.T) {
	_, err := Parse(wrap(target("Target", "Orphan", "CS_MISSING", flat(50, "0.5")), specsD65))
	if !errors.Is(err, ErrUnresolvedSpecification) {
		t.Fatalf("err = %v, want ErrUnresolvedSpecification", err)
	}
}

func TestParseFallsBackToObjectName(t *testing.T) {
	doc, err := Parse(wrap(target("Target", "Cyan 100", "CS_D65_2", flat(50, "0.5")), specsD65))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Spectra[0].Name != "Cyan 100" {
		t.Fatalf("name = %q", doc.Spectra[0].Name)
	}
}

func TestParseStartFromSpectrumAttribute(t *testing.T) {
	specs := `
  <ColorSpecificationCollection>
    <ColorSpecification Id="S">
      <TristimulusSpec><Illuminant>D50</Illuminant><Observer>2</Observer></TristimulusSpec>
      <MeasurementSpec><WavelengthRange Increment="10"/></MeasurementSpec>
    </ColorSpecification>
  </ColorSpecificationCollection>`
	data := `<CxF><Resources><ObjectCollection>
   <Object ObjectType="Target" Name="X">
    <ColorValues><ReflectanceSpectrum ColorSpecification="S" StartWL="380">0.1 0.2</ReflectanceSpectrum></ColorValues>
   </Object>
  </ObjectCollection>` + specs + `</Resources></CxF>`
	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := doc.Spectra[0]
	if s.StartWL != 380 || s.Values[3] != 0.1 || s.Values[4] != 0.1 || s.Values[5] != 0.2 {
		t.Fatalf("unexpected spectrum: start=%v values=%v", s.StartWL, s.Values[:6])
	}
}

func TestParseErrors(t *testing.T) {
	noIlluminant := `
  <cc:ColorSpecificationCollection>
    <cc:ColorSpecification Id="CS_D65_2">
      <cc:TristimulusSpec><cc:Observer>2</cc:Observer></cc:TristimulusSpec>
      <cc:MeasurementSpec><cc:WavelengthRange StartWL="340" Increment="10"/></cc:MeasurementSpec>
    </cc:ColorSpecification>
  </cc:ColorSpecificationCollection>`
	badObserver := strings.Replace(specsD65, "2_Degree", "5_Degree", 1)
	noStep := strings.Replace(specsD65, `StartWL="340" Increment="10"`, `StartWL="340"`, 1)
	lowStart := strings.Replace(specsD65, `StartWL="340"`, `StartWL="300"`, 1)
	tinyStep := strings.Replace(specsD65, `Increment="10"`, `Increment="1e-300"`, 1)

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", []byte("  \n"), ErrEmptyDocument},
		{"malformed", []byte("<CxF><Resources>"), ErrMalformedXML},
		{"no object collection", []byte(`<CxF><Resources></Resources></CxF>`), ErrNoObjectCollection},
		{"no spectra", wrap(target("Substrate", "Base", "CS_D65_2", "0.5"), specsD65), ErrNoSpectra},
		{"no specifications", wrap(target("Target", "A", "CS_D65_2", "0.5"), ""), ErrNoSpecifications},
		{"missing illuminant", wrap(target("Target", "A", "CS_D65_2", "0.5"), noIlluminant), ErrMissingCondition},
		{"unsupported observer", wrap(target("Target", "A", "CS_D65_2", "0.5"), badObserver), spectral.ErrUnknownObserver},
		{"missing increment", wrap(target("Target", "A", "CS_D65_2", "0.5"), noStep), ErrStep},
		{"start below range", wrap(target("Target", "A", "CS_D65_2", "0.5"), lowStart), ErrWavelengthRange},
		{"tiny increment", wrap(target("Target", "A", "CS_D65_2", "0.5"), tinyStep), ErrStep},
		{"empty spectrum", wrap(target("Target", "A", "CS_D65_2", "  "), specsD65), ErrEmptySpectrum},
		{"bad value", wrap(target("Target", "A", "CS_D65_2", "0.5 abc"), specsD65), ErrMalformedValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse(tc.data)
			if err == nil {
				t.Fatalf("expected error, got %d spectra", len(doc.Spectra))
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrData) {
				t.Fatalf("err %v does not match ErrData", err)
			}
		})
	}
}

func TestSpectrumErrorNamesSpectrum(t *testing.T) {
	_, err := Parse(wrap(target("Target", "Magenta", "CS_D65_2", "x"), specsD65))
	var se *SpectrumError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SpectrumError", err)
	}
	if se.Name != "Magenta" || se.Specification != "CS_D65_2" {
		t.Fatalf("unexpected SpectrumError: %+v", se)
	}
}
