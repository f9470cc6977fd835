package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"cxf-converter/internal/colorspace"
	"cxf-converter/internal/model"
)

const (
	swatchColumns = 8
	// MaxSwatchTiles bounds the canvas; later results are left out.
	MaxSwatchTiles = 64
)

var ErrNoSwatches = errors.New("conversion has no results to render")

type SwatchService struct {
	size int
}

func NewSwatchService(size int) *SwatchService {
	if size <= 0 {
		size = 96
	}
	return &SwatchService{size: size}
}

// RenderPNG draws one square tile per result, left to right and wrapping
// after eight tiles, on a white background. Only the first MaxSwatchTiles
// results are drawn.
func (s *SwatchService) RenderPNG(results []model.ConversionResult) ([]byte, error) {
	if len(results) == 0 {
		return nil, ErrNoSwatches
	}
	if len(results) > MaxSwatchTiles {
		results = results[:MaxSwatchTiles]
	}
	tiles := make([]color.Color, 0, len(results))
	for _, r := range results {
		c, err := swatchColor(r)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, c)
	}

	gap := maxInt(s.size/16, 1)
	cols := len(tiles)
	if cols > swatchColumns {
		cols = swatchColumns
	}
	rows := (len(tiles) + swatchColumns - 1) / swatchColumns
	width := cols*s.size + (cols+1)*gap
	height := rows*s.size + (rows+1)*gap

	canvas := imaging.New(width, height, color.White)
	for i, c := range tiles {
		x := gap + (i%swatchColumns)*(s.size+gap)
		y := gap + (i/swatchColumns)*(s.size+gap)
		canvas = imaging.Paste(canvas, imaging.New(s.size, s.size, c), image.Pt(x, y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func swatchColor(r model.ConversionResult) (color.Color, error) {
	for _, row := range r.Result {
		if row.Space != colorspace.SpaceHEX {
			continue
		}
		c, err := colorful.Hex(row.Value)
		if err != nil {
			return nil, fmt.Errorf("swatch %q: %w", r.Name, err)
		}
		return c.Clamped(), nil
	}
	return nil, fmt.Errorf("swatch %q: no %s value", r.Name, colorspace.SpaceHEX)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
