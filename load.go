package tileset

import (
	"crypto/sha1"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF sources
	_ "image/jpeg" // register JPEG sources
	_ "image/png"  // register PNG sources
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP sources
	_ "golang.org/x/image/tiff" // register TIFF sources
	_ "golang.org/x/image/webp" // register WebP sources
)

type sprite struct {
	path  string
	image *image.NRGBA
	sha1  string
}

// Straight alpha so source bytes survive the copy unchanged
func toNRGBA(m image.Image) *image.NRGBA {
	if n, ok := m.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := m.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), m, b.Min, draw.Src)
	return n
}

func decodeFile(file string) (*image.NRGBA, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	r := io.TeeReader(f, h)

	m, _, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	// Hash whatever trails the image data too
	if _, err := io.Copy(ioutil.Discard, r); err != nil {
		return nil, "", err
	}

	return toNRGBA(m), fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (p *Packer) load(rows [][]string) ([][]sprite, error) {
	sprites := make([][]sprite, len(rows))
	for r, row := range rows {
		sprites[r] = make([]sprite, len(row))
		for c, file := range row {
			m, sum, err := decodeFile(filepath.Join(p.root, filepath.FromSlash(file)))
			if err != nil {
				return nil, &LoadError{Path: file, Row: r, Col: c, Err: err}
			}
			sprites[r][c] = sprite{
				path:  file,
				image: m,
				sha1:  sum,
			}
		}
	}
	return sprites, nil
}
