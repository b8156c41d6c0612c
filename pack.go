package tileset

import (
	"fmt"
	"image"

	"github.com/bodgit/tileset/manifest"
	"github.com/bodgit/tileset/palette"
)

// Placement records where a manifest entry was copied to in the tileset
type Placement struct {
	Path string
	Row  int
	Col  int
	Rect image.Rectangle
	SHA1 string
}

// Tileset is the result of packing a manifest
type Tileset struct {
	Image      *image.NRGBA
	Placements []Placement

	colors int
}

// MaxPixels bounds the canvas area, 1 GiB of NRGBA pixels
const MaxPixels = 1 << 28

type layout struct {
	tileSize int
	policy   manifest.Policy
	columns  int
	rows     int
	colors   int
}

func (p *Packer) layout(m *manifest.Manifest) (layout, error) {
	l := layout{
		tileSize: m.TileSize,
		policy:   m.Policy,
		columns:  m.Columns,
		rows:     m.Rows,
		colors:   p.options.Colors,
	}

	if p.options.TileSize != 0 {
		l.tileSize = p.options.TileSize
	}
	if p.options.Policy != "" {
		l.policy = p.options.Policy
	}
	if p.options.Columns != 0 {
		l.columns = p.options.Columns
	}
	if p.options.Rows != 0 {
		l.rows = p.options.Rows
	}

	if l.tileSize == 0 {
		l.tileSize = manifest.DefaultTileSize
	}
	if l.policy == "" {
		l.policy = manifest.Fixed
	}
	if l.columns == 0 {
		l.columns = m.Widest()
	}

	switch {
	case l.tileSize < 0:
		return layout{}, fmt.Errorf("tileset: invalid tile size %d", l.tileSize)
	case !l.policy.Valid():
		return layout{}, fmt.Errorf("tileset: unknown policy %q", l.policy)
	case l.columns < 0 || l.rows < 0:
		return layout{}, fmt.Errorf("tileset: invalid grid %dx%d", l.columns, l.rows)
	case l.columns > MaxPixels/l.tileSize || l.rows > MaxPixels/l.tileSize:
		return layout{}, fmt.Errorf("tileset: %dx%d grid of %d pixel tiles exceeds %d pixels", l.columns, l.rows, l.tileSize, MaxPixels)
	case l.colors != 0 && (l.colors < palette.MinColors || l.colors > palette.MaxColors):
		return layout{}, fmt.Errorf("tileset: %d colors outside %d-%d", l.colors, palette.MinColors, palette.MaxColors)
	}

	return l, nil
}

// offsets returns the y offset of every row and the canvas height
func (l layout) offsets(sprites [][]sprite) ([]int, int) {
	ys := make([]int, len(sprites))

	if l.policy == manifest.Fixed {
		for r := range sprites {
			ys[r] = r * l.tileSize
		}
		rows := l.rows
		if rows == 0 {
			rows = len(sprites)
		}
		return ys, rows * l.tileSize
	}

	y := 0
	for r, row := range sprites {
		ys[r] = y
		height := 0
		for _, s := range row {
			if h := s.image.Rect.Dy(); h > height {
				height = h
			}
		}
		y += height
	}

	if l.rows != 0 {
		return ys, l.rows * l.tileSize
	}
	return ys, y
}

func blit(dst *image.NRGBA, at image.Point, src *image.NRGBA) {
	w := src.Rect.Dx() * 4
	for y := 0; y < src.Rect.Dy(); y++ {
		d := dst.PixOffset(at.X, at.Y+y)
		s := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		copy(dst.Pix[d:d+w], src.Pix[s:s+w])
	}
}

// Pixels with zero alpha can still carry color; zero it so identical
// looking pixels encode identically
func clearTransparent(m *image.NRGBA) {
	for i := 0; i+3 < len(m.Pix); i += 4 {
		if m.Pix[i+3] == 0 {
			m.Pix[i+0] = 0
			m.Pix[i+1] = 0
			m.Pix[i+2] = 0
		}
	}
}

// Pack loads every image in the manifest and copies it into a new canvas.
// Any failure aborts the whole pack.
func (p *Packer) Pack(m *manifest.Manifest) (*Tileset, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	l, err := p.layout(m)
	if err != nil {
		return nil, err
	}

	// The variable policy needs every row height before the canvas can be
	// sized, so everything is loaded up front
	sprites, err := p.load(m.Images)
	if err != nil {
		return nil, err
	}

	ys, height := l.offsets(sprites)
	width := l.columns * l.tileSize
	if width > 0 && height > MaxPixels/width {
		return nil, fmt.Errorf("tileset: %dx%d canvas exceeds %d pixels", width, height, MaxPixels)
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))

	placements := make([]Placement, 0, m.Len())
	for r, row := range sprites {
		for c, s := range row {
			b := s.image.Rect
			rect := image.Rect(0, 0, b.Dx(), b.Dy()).Add(image.Pt(c*l.tileSize, ys[r]))

			if !rect.In(canvas.Rect) {
				return nil, &BoundsError{
					Path:   s.path,
					Row:    r,
					Col:    c,
					Rect:   rect,
					Canvas: canvas.Rect,
				}
			}

			blit(canvas, rect.Min, s.image)

			placements = append(placements, Placement{
				Path: s.path,
				Row:  r,
				Col:  c,
				Rect: rect,
				SHA1: s.sha1,
			})
			p.logger.Printf("Placed \"%s\" at %d,%d (%dx%d)\n", s.path, rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy())
		}
	}

	if !p.options.KeepTransparentColor {
		clearTransparent(canvas)
	}

	p.logger.Printf("Packed %d images into %dx%d canvas\n", len(placements), canvas.Rect.Dx(), canvas.Rect.Dy())

	return &Tileset{
		Image:      canvas,
		Placements: placements,
		colors:     l.colors,
	}, nil
}
