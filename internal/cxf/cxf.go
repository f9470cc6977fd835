// Package cxf reads reflectance spectra and their measurement conditions
// from Color Exchange Format (CxF3) documents.
package cxf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"cxf-converter/internal/observability"
	"cxf-converter/internal/spectral"
)

// Element names are matched without their namespace, so both cc:CxF and a
// default-namespace CxF root decode.
type document struct {
	XMLName   xml.Name   `xml:"CxF"`
	Resources *resources `xml:"Resources"`
}

type resources struct {
	ObjectCollection             *objectCollection `xml:"ObjectCollection"`
	ColorSpecificationCollection *specCollection   `xml:"ColorSpecificationCollection"`
}

type objectCollection struct {
	Objects []object `xml:"Object"`
}

type object struct {
	ObjectType  string       `xml:"ObjectType,attr"`
	Name        string       `xml:"Name,attr"`
	ID          string       `xml:"Id,attr"`
	ColorValues *colorValues `xml:"ColorValues"`
}

type colorValues struct {
	ReflectanceSpectra []reflectanceSpectrum `xml:"ReflectanceSpectrum"`
}

type reflectanceSpectrum struct {
	Name               string `xml:"Name,attr"`
	ColorSpecification string `xml:"ColorSpecification,attr"`
	StartWL            string `xml:"StartWL,attr"`
	Text               string `xml:",chardata"`
}

type specCollection struct {
	Specifications []colorSpecification `xml:"ColorSpecification"`
}

type colorSpecification struct {
	ID          string           `xml:"Id,attr"`
	Tristimulus *tristimulusSpec `xml:"TristimulusSpec"`
	Measurement *measurementSpec `xml:"MeasurementSpec"`
}

type tristimulusSpec struct {
	Illuminant string `xml:"Illuminant"`
	Observer   string `xml:"Observer"`
	Method     string `xml:"Method"`
}

type measurementSpec struct {
	MeasurementType string           `xml:"MeasurementType"`
	WavelengthRange *wavelengthRange `xml:"WavelengthRange"`
}

type wavelengthRange struct {
	StartWL   string `xml:"StartWL,attr"`
	Increment string `xml:"Increment,attr"`
}

// Spectrum is one measured reflectance curve with the conditions it was
// measured under.
type Spectrum struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	ObjectName string              `json:"object_name,omitempty"`
	ObjectType string              `json:"object_type"`
	Illuminant spectral.Illuminant `json:"illuminant"`
	Observer   spectral.Observer   `json:"observer"`
	StartWL    float64             `json:"start_wl"`
	Step       float64             `json:"step"`
	Raw        []float64           `json:"raw"`
	Values     []float64           `json:"values"`
}

type Document struct {
	Spectra  []Spectrum `json:"spectra"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Parser turns CxF bytes into spectra. Spectra referencing an unknown color
// specification are skipped and reported as warnings.
type Parser struct {
	log observability.Logger
}

func NewParser(log observability.Logger) *Parser {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Parser{log: log}
}

// Parse uses a parser that does not log.
func Parse(data []byte) (*Document, error) {
	return NewParser(nil).Parse(data)
}

type candidate struct {
	objectName string
	objectType string
	spectrum   reflectanceSpectrum
}

func (p *Parser) Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	if doc.Resources == nil || doc.Resources.ObjectCollection == nil {
		return nil, ErrNoObjectCollection
	}

	candidates := make([]candidate, 0, 8)
	for _, obj := range doc.Resources.ObjectCollection.Objects {
		if !measurable(obj.ObjectType) || obj.ColorValues == nil {
			continue
		}
		for _, rs := range obj.ColorValues.ReflectanceSpectra {
			if strings.TrimSpace(rs.ColorSpecification) == "" {
				continue
			}
			candidates = append(candidates, candidate{objectName: obj.Name, objectType: obj.ObjectType, spectrum: rs})
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoSpectra
	}

	specCol := doc.Resources.ColorSpecificationCollection
	if specCol == nil || len(specCol.Specifications) == 0 {
		return nil, ErrNoSpecifications
	}
	specs := make(map[string]colorSpecification, len(specCol.Specifications))
	for _, s := range specCol.Specifications {
		if _, dup := specs[s.ID]; dup {
			p.log.Warn("duplicate color specification, keeping first", observability.String("id", s.ID))
			continue
		}
		specs[s.ID] = s
	}

	out := &Document{Spectra: make([]Spectrum, 0, len(candidates))}
	for _, c := range candidates {
		name := spectrumName(c)
		id := c.spectrum.ColorSpecification
		spec, ok := specs[id]
		if !ok {
			msg := fmt.Sprintf("color specification not found for ID: %s (spectrum %q)", id, name)
			p.log.Warn("skipping spectrum", observability.String("spectrum", name), observability.String("specification", id))
			out.Warnings = append(out.Warnings, msg)
			continue
		}
		s, err := buildSpectrum(c, spec)
		if err != nil {
			return nil, &SpectrumError{Name: name, Specification: id, Err: err}
		}
		s.Name = name
		out.Spectra = append(out.Spectra, s)
	}
	if len(out.Spectra) == 0 {
		return nil, fmt.Errorf("%w: no spectrum could be resolved (%d skipped)", ErrUnresolvedSpecification, len(out.Warnings))
	}
	p.log.Debug("parsed cxf", observability.Int("spectra", len(out.Spectra)), observability.Int("skipped", len(out.Warnings)))
	return out, nil
}

func measurable(objectType string) bool {
	return strings.EqualFold(objectType, "Target") || strings.EqualFold(objectType, "Standard")
}

func spectrumName(c candidate) string {
	if n := strings.TrimSpace(c.spectrum.Name); n != "" {
		return n
	}
	if n := strings.TrimSpace(c.objectName); n != "" {
		return n
	}
	return "Unnamed Spectrum"
}

func buildSpectrum(c candidate, spec colorSpecification) (Spectrum, error) {
	if spec.Tristimulus == nil {
		return Spectrum{}, fmt.Errorf("%w: TristimulusSpec missing", ErrMissingCondition)
	}
	ill, err := spectral.ParseIlluminant(spec.Tristimulus.Illuminant)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: %w", ErrMissingCondition, err)
	}
	obs, err := spectral.ParseObserver(spec.Tristimulus.Observer)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: %w", ErrMissingCondition, err)
	}

	var rangeStart, rangeStep string
	if spec.Measurement != nil && spec.Measurement.WavelengthRange != nil {
		rangeStart = spec.Measurement.WavelengthRange.StartWL
		rangeStep = spec.Measurement.WavelengthRange.Increment
	}
	if strings.TrimSpace(rangeStart) == "" {
		rangeStart = c.spectrum.StartWL
	}
	start, err := parseAttr(rangeStart)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: StartWL %v", ErrWavelengthRange, err)
	}
	step, err := parseAttr(rangeStep)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: Increment %v", ErrStep, err)
	}

	raw, err := ParseValues(c.spectrum.Text)
	if err != nil {
		return Spectrum{}, err
	}
	values, err := Normalize(raw, start, step)
	if err != nil {
		return Spectrum{}, err
	}

	return Spectrum{
		ID:         spec.ID,
		ObjectName: c.objectName,
		ObjectType: c.objectType,
		Illuminant: ill,
		Observer:   obs,
		StartWL:    start,
		Step:       step,
		Raw:        raw,
		Values:     values,
	}, nil
}

func parseAttr(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("missing")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	return f, nil
}

// ParseValues reads whitespace separated reflectance samples.
func ParseValues(text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrEmptySpectrum
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d %q", ErrMalformedValue, i, f)
		}
		out[i] = v
	}
	return out, nil
}
