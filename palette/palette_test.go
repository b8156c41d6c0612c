package palette

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{0xff, 0x00, 0x00, 0xff}

// Left half red, right half transparent
func halfRed(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			m.SetNRGBA(x, y, red)
		}
	}
	return m
}

func TestReduceColorRange(t *testing.T) {
	m := halfRed(4, 4)

	for _, colors := range []int{-1, 0, 1, 257} {
		_, err := Reduce(m, colors)
		assert.Error(t, err, "colors = %d", colors)
	}
}

func TestReduceTransparentIndex(t *testing.T) {
	m := halfRed(8, 8)

	pm, err := Reduce(m, 16)
	require.NoError(t, err)

	assert.Equal(t, m.Bounds(), pm.Bounds())
	assert.LessOrEqual(t, len(pm.Palette), 16)
	assert.Equal(t, color.Color(transparent), pm.Palette[0])

	assert.Equal(t, uint8(0), pm.ColorIndexAt(7, 7))
	assert.NotEqual(t, uint8(0), pm.ColorIndexAt(0, 0))
	assert.Equal(t, color.Color(red), color.NRGBAModel.Convert(pm.At(0, 0)))
}

func TestReduceKeepsSmallPaletted(t *testing.T) {
	p := color.Palette{transparent, red}
	m := image.NewPaletted(image.Rect(0, 0, 4, 4), p)
	m.SetColorIndex(1, 1, 1)

	pm, err := Reduce(m, 16)
	require.NoError(t, err)
	assert.Same(t, m, pm)
}

func TestReduceMovesOrigin(t *testing.T) {
	m := halfRed(8, 8).SubImage(image.Rect(2, 2, 6, 6))

	pm, err := Reduce(m, 4)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), pm.Bounds())
}

func TestEncode(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, halfRed(8, 8), 8))

	m, err := png.Decode(b)
	require.NoError(t, err)

	pm, ok := m.(*image.Paletted)
	require.True(t, ok)

	_, _, _, a := pm.At(7, 0).RGBA()
	assert.Equal(t, uint32(0), a)
	assert.Equal(t, color.Color(red), color.NRGBAModel.Convert(pm.At(0, 0)))
}
