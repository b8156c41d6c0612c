/*
Package tileset is a library for packing individually authored sprite images
into a single tileset image.

Images are listed in a manifest as rows of paths. Column c of row r is copied
to x = c * tile size and, depending on the placement policy, either
y = r * tile size or directly below the tallest image of the previous row.
Everything not covered by an image is left fully transparent.
*/
package tileset

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/tileset/manifest"
)

// Filename is the default name of the packed tileset
const Filename = "tileset.png"

// Options override the layout hints carried by a manifest. Zero values defer
// to the manifest.
type Options struct {
	// TileSize is the width and height in pixels of one grid cell
	TileSize int
	// Policy selects how row offsets are computed
	Policy manifest.Policy
	// Columns and Rows fix the canvas capacity in tiles
	Columns int
	Rows    int
	// Colors, if non-zero, writes an indexed PNG with at most this many
	// colors
	Colors int
	// KeepTransparentColor stops the color channels of fully transparent
	// pixels from being cleared
	KeepTransparentColor bool
}

// Packer packs manifests whose paths are relative to one root directory
type Packer struct {
	root    string
	logger  *log.Logger
	options Options
}

// New returns a Packer resolving manifest paths under root
func New(root string, logger *log.Logger, options Options) *Packer {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Packer{
		root:    root,
		logger:  logger,
		options: options,
	}
}
