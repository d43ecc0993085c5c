// Package imageio is the image codec boundary: it decodes source files into
// 8-bit pixel grids and encodes single-channel grids as lossless PNG.
//
// Two backends exist. The native backend (default) is pure Go. Building
// with the "opencv" tag swaps in an OpenCV backend via gocv; it needs the
// OpenCV shared libraries at build and run time.
package imageio

import "fmt"

// Grid is a decoded image: Height rows of Width pixels, each pixel holding
// Channels interleaved 8-bit samples. Channel order is whatever the backend
// decodes to (RGB natively, BGR under OpenCV); nothing downstream depends on it.
type Grid struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height, channels int) *Grid {
	return &Grid{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Pixels returns Width*Height.
func (g *Grid) Pixels() int {
	return g.Width * g.Height
}

// Pixel returns the samples of the pixel at (x, y). The slice aliases Pix.
func (g *Grid) Pixel(x, y int) []uint8 {
	i := (y*g.Width + x) * g.Channels
	return g.Pix[i : i+g.Channels]
}

// Validate checks that Pix matches the declared geometry.
func (g *Grid) Validate() error {
	if g.Width < 0 || g.Height < 0 || g.Channels < 1 {
		return fmt.Errorf("invalid grid geometry %dx%dx%d", g.Width, g.Height, g.Channels)
	}
	if want := g.Width * g.Height * g.Channels; len(g.Pix) != want {
		return fmt.Errorf("grid has %d samples, want %d", len(g.Pix), want)
	}
	return nil
}

// Codec decodes and encodes grids. Implementations must be safe for
// concurrent use on distinct paths.
type Codec interface {
	// Name identifies the backend in diagnostics.
	Name() string
	// Formats lists the source formats Decode understands.
	Formats() []string
	// Decode reads path into a grid with 1 or 3 channels.
	Decode(path string) (*Grid, error)
	// Encode writes a single-channel grid to path as lossless PNG,
	// replacing any existing file.
	Encode(g *Grid, path string) error
}
