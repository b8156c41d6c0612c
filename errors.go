package tileset

import (
	"fmt"
	"image"
)

// LoadError records a manifest entry that could not be opened or decoded
type LoadError struct {
	Path string
	Row  int
	Col  int
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("tileset: cannot load \"%s\" (row %d, column %d): %v", e.Path, e.Row, e.Col, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// BoundsError records a manifest entry whose image does not fit inside the
// canvas at its placement
type BoundsError struct {
	Path   string
	Row    int
	Col    int
	Rect   image.Rectangle
	Canvas image.Rectangle
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("tileset: \"%s\" (row %d, column %d) placed at %v exceeds canvas %v", e.Path, e.Row, e.Col, e.Rect, e.Canvas)
}

// WriteError records a failure to write the packed tileset
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("tileset: cannot write \"%s\": %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
