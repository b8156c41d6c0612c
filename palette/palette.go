/*
Package palette implements a reduced color PNG encoder for tilesets.

Sprite sheets rarely use more than a few hundred distinct colors so writing
them as indexed PNG shrinks them considerably. The first palette entry is
always fully transparent so every empty cell of a tileset maps to index 0.
*/
package palette

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// MinColors is the smallest palette that can be requested, the
	// transparent entry plus one color
	MinColors = 2
	// MaxColors is the largest palette an indexed PNG can hold
	MaxColors = 256
)

var transparent = color.NRGBA{}

// Reduce returns m as a paletted image with at most colors entries. An image
// that is already paletted and small enough is returned unchanged.
func Reduce(m image.Image, colors int) (*image.Paletted, error) {
	if colors < MinColors || colors > MaxColors {
		return nil, fmt.Errorf("palette: %d colors outside %d-%d", colors, MinColors, MaxColors)
	}

	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > colors {
		q := quantize.MedianCutQuantizer{}

		// Reserve the first entry for transparency, the quantizer fills
		// the rest
		p := append(color.Palette{transparent}, q.Quantize(make(color.Palette, 0, colors-1), m)...)

		pm = image.NewPaletted(b, p)
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm, nil
}

// Encode writes the Image m to w as an indexed PNG of at most colors colors.
func Encode(w io.Writer, m image.Image, colors int) error {
	pm, err := Reduce(m, colors)
	if err != nil {
		return err
	}

	e := png.Encoder{CompressionLevel: png.BestCompression}

	return e.Encode(w, pm)
}
