package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	// Decoders register themselves with image.Decode.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// NativeCodec is the pure-Go backend. Color sources decode to 3-channel RGB
// with alpha dropped; grayscale sources stay single-channel. Samples deeper
// than 8 bits are scaled down to 8.
type NativeCodec struct{}

// Name implements Codec.
func (NativeCodec) Name() string { return "native" }

// Formats implements Codec.
func (NativeCodec) Formats() []string { return []string{"png", "jpeg", "bmp", "tiff"} }

// Decode implements Codec.
func (NativeCodec) Decode(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	g := FromImage(img)
	if g.Pixels() == 0 {
		return nil, fmt.Errorf("decode %s: empty %s image", path, format)
	}
	return g, nil
}

// Encode implements Codec.
func (NativeCodec) Encode(g *Grid, path string) (err error) {
	img, err := ToGray(g)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}

// FromImage converts a decoded image into a grid.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		g := NewGrid(w, h, 1)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			copy(g.Pix[y*w:(y+1)*w], row)
		}
		return g
	case *image.Gray16:
		g := NewGrid(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g.Pix[y*w+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return g
	case *image.NRGBA:
		g := NewGrid(w, h, 3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				s := src.PixOffset(b.Min.X+x, b.Min.Y+y)
				copy(g.Pixel(x, y), src.Pix[s:s+3])
			}
		}
		return g
	}

	g := NewGrid(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p := g.Pixel(x, y)
			p[0], p[1], p[2] = c.R, c.G, c.B
		}
	}
	return g
}

// ToGray wraps a single-channel grid as an *image.Gray without copying.
func ToGray(g *Grid) (*image.Gray, error) {
	if g == nil {
		return nil, errors.New("nil grid")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if g.Channels != 1 {
		return nil, fmt.Errorf("expected a single-channel grid, got %d channels", g.Channels)
	}
	return &image.Gray{
		Pix:    g.Pix,
		Stride: g.Width,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}, nil
}
