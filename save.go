package tileset

import (
	"bytes"
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/tileset/palette"
)

// Encode writes the tileset to w as PNG
func (t *Tileset) Encode(w io.Writer) error {
	if t.colors != 0 {
		return palette.Encode(w, t.Image, t.colors)
	}

	e := png.Encoder{CompressionLevel: png.BestCompression}

	return e.Encode(w, t.Image)
}

// Save writes the tileset to file. The image is fully encoded before the
// destination is touched and is moved into place with a rename, so on
// failure no partial file is left behind.
func (t *Tileset) Save(file string) error {
	b := new(bytes.Buffer)
	if err := t.Encode(b); err != nil {
		return &WriteError{Path: file, Err: err}
	}

	if err := writeFile(file, b.Bytes()); err != nil {
		return &WriteError{Path: file, Err: err}
	}

	return nil
}

func writeFile(file string, b []byte) (err error) {
	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(b); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
