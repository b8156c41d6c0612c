/*
Package manifest implements the list of sprite images that make up a tileset.

A manifest is an ordered list of rows, each row an ordered list of image paths
relative to a root directory. The row index and the position within the row
are the only addressing; there are no explicit coordinates. Optional layout
hints (tile size, grid capacity and row placement policy) travel with the
manifest so a manifest file fully describes one tileset.
*/
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy selects how the vertical offset of each row is computed
type Policy string

const (
	// Fixed places row r at r * tile size regardless of image heights
	Fixed Policy = "fixed"
	// Variable places each row directly below the tallest image of the
	// previous row
	Variable Policy = "variable"
)

// Valid reports whether p is a known policy. The empty policy is valid and
// means Fixed.
func (p Policy) Valid() bool {
	switch p {
	case "", Fixed, Variable:
		return true
	}
	return false
}

const (
	// DefaultTileSize is the tile size in pixels of the built-in manifest
	DefaultTileSize = 48
	defaultGrid     = 10
)

// Manifest is an ordered list of rows of image paths plus optional layout
// hints. A zero layout hint means it is derived from the images.
type Manifest struct {
	TileSize int        `yaml:"tile_size,omitempty"`
	Columns  int        `yaml:"columns,omitempty"`
	Rows     int        `yaml:"rows,omitempty"`
	Policy   Policy     `yaml:"policy,omitempty"`
	Images   [][]string `yaml:"images"`
}

// Default returns the built-in manifest for the game's sprites
func Default() *Manifest {
	return &Manifest{
		TileSize: DefaultTileSize,
		Columns:  defaultGrid,
		Rows:     defaultGrid,
		Policy:   Fixed,
		Images: [][]string{
			{"base/1.png", "base/2.png", "pit/top.png", "pit/left.png", "pit/right.png", "pit/bottom.png", "pit/center.png"},
			{"object/rebar.png", "object/rubble.png", "pit/tl.png", "pit/tr.png", "pit/bl.png", "pit/br.png"},
			{"unit/squaddie.png", "unit/squaddie_left.png", "unit/squaddie_back.png", "unit/squaddie_right.png", "unit/machine.png", "unit/machine_back.png"},
			{"wall/ruin1_left.png", "wall/ruin1_top.png", "wall/ruin2_left.png", "wall/ruin2_top.png"},
			{"bullet/regular.png", "bullet/plasma.png"},
			{"item/squaddie_corpse.png", "item/machine_corpse.png", "item/scrap.png", "item/weapon.png", "item/ammo_clip.png", "item/bandages.png", "item/grenade.png"},
			{"cursor/default.png", "cursor/crosshair.png", "path.png"},
			{"decoration/left_edge.png", "decoration/right_edge.png", "decoration/skeleton.png", "decoration/skeleton_cracked.png", "decoration/rubble.png", "decoration/crater.png", "explosion/1.png", "explosion/2.png", "explosion/3.png"},
			{"title.png"},
			{"button/end_turn.png", "button/inventory.png", "button/save_game.png"},
		},
	}
}

// Len returns the number of images in the manifest
func (m *Manifest) Len() int {
	n := 0
	for _, row := range m.Images {
		n += len(row)
	}
	return n
}

// Widest returns the number of images in the longest row
func (m *Manifest) Widest() int {
	w := 0
	for _, row := range m.Images {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Validate checks the manifest is usable for packing
func (m *Manifest) Validate() error {
	if len(m.Images) == 0 {
		return errors.New("manifest: no rows")
	}

	switch {
	case m.TileSize < 0:
		return fmt.Errorf("manifest: negative tile size %d", m.TileSize)
	case m.Columns < 0:
		return fmt.Errorf("manifest: negative column count %d", m.Columns)
	case m.Rows < 0:
		return fmt.Errorf("manifest: negative row count %d", m.Rows)
	case !m.Policy.Valid():
		return fmt.Errorf("manifest: unknown policy %q", m.Policy)
	}

	for r, row := range m.Images {
		if len(row) == 0 {
			return fmt.Errorf("manifest: row %d is empty", r)
		}
		for c, file := range row {
			if err := checkPath(file); err != nil {
				return fmt.Errorf("manifest: row %d, column %d: %w", r, c, err)
			}
		}
	}

	return nil
}

func checkPath(file string) error {
	if file == "" {
		return errors.New("empty path")
	}
	if path.IsAbs(file) || strings.HasPrefix(file, `\`) || (len(file) > 1 && file[1] == ':') {
		return fmt.Errorf("absolute path %q", file)
	}
	if clean := path.Clean(file); clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path %q escapes the root directory", file)
	}
	return nil
}

// Load decodes and validates a YAML manifest read from r
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	m := new(Manifest)
	if err := dec.Decode(m); err != nil {
		if err == io.EOF {
			return nil, errors.New("manifest: empty document")
		}
		return nil, fmt.Errorf("manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// LoadFile is like Load but reads the manifest from the named file
func LoadFile(file string) (*Manifest, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return m, nil
}

// Marshal encodes the manifest as YAML
func (m *Manifest) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)

	enc := yaml.NewEncoder(b)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
