//go:build opencv

package imageio

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// Default returns the codec compiled into this binary.
func Default() Codec { return OpenCVCodec{} }

// OpenCVCodec decodes with imread (8-bit BGR, alpha dropped) and writes
// masks with imwrite. Mats never outlive a call.
type OpenCVCodec struct{}

// Name implements Codec.
func (OpenCVCodec) Name() string { return "opencv " + gocv.OpenCVVersion() }

// Formats implements Codec.
func (OpenCVCodec) Formats() []string { return []string{"png", "jpeg", "bmp", "tiff"} }

// Decode implements Codec.
func (OpenCVCodec) Decode(path string) (*Grid, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("imread %s: unreadable or unsupported image", path)
	}
	return &Grid{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Pix:      mat.ToBytes(),
	}, nil
}

// Encode implements Codec.
func (OpenCVCodec) Encode(g *Grid, path string) error {
	if g == nil {
		return errors.New("nil grid")
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if g.Channels != 1 {
		return fmt.Errorf("expected a single-channel grid, got %d channels", g.Channels)
	}
	mat, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8UC1, g.Pix)
	if err != nil {
		return fmt.Errorf("wrap mask %s: %w", path, err)
	}
	defer mat.Close()
	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("imwrite %s failed", path)
	}
	return nil
}
