// Package convert runs CxF documents through the full spectral pipeline and
// assembles the per-spectrum result rows.
package convert

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"cxf-converter/internal/colorspace"
	"cxf-converter/internal/cxf"
	"cxf-converter/internal/model"
	"cxf-converter/internal/observability"
	"cxf-converter/internal/spectral"
)

// Converter holds no state between calls; every conversion depends only on
// the bytes it is given.
type Converter struct {
	parser *cxf.Parser
	log    observability.Logger
}

func New(log observability.Logger) *Converter {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Converter{parser: cxf.NewParser(log), log: log}
}

// Report is the lenient form of a conversion: spectra that fail numerically
// are listed in Failures instead of aborting the document.
type Report struct {
	Results  []model.ConversionResult `json:"results" yaml:"results"`
	Warnings []string                 `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Failures []model.SpectrumFailure  `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Convert returns one result per resolved spectrum in document order. The
// first spectrum that cannot be converted aborts the call.
func (c *Converter) Convert(data []byte) ([]model.ConversionResult, error) {
	doc, err := c.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	results := make([]model.ConversionResult, 0, len(doc.Spectra))
	for _, s := range doc.Spectra {
		r, err := ConvertSpectrum(s)
		if err != nil {
			return nil, &cxf.SpectrumError{Name: s.Name, Specification: s.ID, Err: err}
		}
		results = append(results, r)
	}
	return results, nil
}

// ConvertDetailed fails only on document level errors.
func (c *Converter) ConvertDetailed(data []byte) (Report, error) {
	doc, err := c.parser.Parse(data)
	if err != nil {
		return Report{}, err
	}
	rep := Report{
		Results:  make([]model.ConversionResult, 0, len(doc.Spectra)),
		Warnings: doc.Warnings,
	}
	for _, s := range doc.Spectra {
		r, err := ConvertSpectrum(s)
		if err != nil {
			c.log.Warn("spectrum conversion failed",
				observability.String("spectrum", s.Name),
				observability.String("specification", s.ID),
				observability.Error("err", err),
			)
			rep.Failures = append(rep.Failures, model.SpectrumFailure{
				Name:          s.Name,
				Specification: s.ID,
				Error:         err.Error(),
			})
			continue
		}
		rep.Results = append(rep.Results, r)
	}
	return rep, nil
}

// ConvertSpectrum integrates a normalized spectrum and renders every output
// space in display order.
func ConvertSpectrum(s cxf.Spectrum) (model.ConversionResult, error) {
	xyz, err := spectral.Integrate(s.Values, s.Illuminant, s.Observer)
	if err != nil {
		return model.ConversionResult{}, err
	}
	rgb, err := colorspace.XYZToSRGB(xyz, s.Illuminant, s.Observer)
	if err != nil {
		return model.ConversionResult{}, err
	}
	lab, err := colorspace.XYZToLab(xyz, s.Illuminant, s.Observer)
	if err != nil {
		return model.ConversionResult{}, err
	}
	ok, err := colorspace.XYZToOKLab(xyz, s.Illuminant, s.Observer)
	if err != nil {
		return model.ConversionResult{}, err
	}

	return model.ConversionResult{
		Name: s.Name,
		Result: []model.ColorSpaceResult{
			{Space: colorspace.SpaceSRGB, Value: colorspace.FormatSRGB(rgb)},
			{Space: colorspace.SpaceCMYK, Value: colorspace.FormatCMYK(colorspace.RGBToCMYK(rgb))},
			{Space: colorspace.SpaceLab, Value: colorspace.FormatLab(lab)},
			{Space: colorspace.SpaceOKLab, Value: colorspace.FormatOKLab(ok)},
			{Space: colorspace.SpaceOKLCH, Value: colorspace.FormatOKLCH(colorspace.OKLabToOKLCH(ok))},
			{Space: colorspace.SpaceHEX, Value: colorspace.RGBToHex(rgb)},
		},
	}, nil
}

// IsDataError reports whether err was caused by the input rather than by the
// process converting it.
func IsDataError(err error) bool {
	return errors.Is(err, cxf.ErrData) ||
		errors.Is(err, spectral.ErrLengthMismatch) ||
		errors.Is(err, spectral.ErrZeroDenominator) ||
		errors.Is(err, spectral.ErrUnknownIlluminant) ||
		errors.Is(err, spectral.ErrUnknownObserver) ||
		errors.Is(err, colorspace.ErrUndefinedOKLab)
}

type File struct {
	Name string
	Data []byte
}

type FileResult struct {
	Name   string
	Report Report
	Err    error
}

// ConvertFiles converts files concurrently with at most workers in flight.
// Results keep the input order; a failing file does not stop the others.
// The returned error is non-nil only when ctx ends first.
func (c *Converter) ConvertFiles(ctx context.Context, files []File, workers int) ([]FileResult, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := c.ConvertDetailed(f.Data)
			out[i] = FileResult{Name: f.Name, Report: rep, Err: err}
			if err != nil {
				c.log.Warn("file conversion failed", observability.String("file", f.Name), observability.Error("err", err))
				return nil
			}
			c.log.Debug("file converted",
				observability.String("file", f.Name),
				observability.Int("results", len(rep.Results)),
				observability.Int("failures", len(rep.Failures)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
