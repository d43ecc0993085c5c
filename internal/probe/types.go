package probe

import (
	"image"
	"image/color"
	"strconv"
)

// ProbeResult is what a header read reveals about one image file.
type ProbeResult struct {
	Path   string
	Format string
	Width  int
	Height int
	// ColorModel is a short name for the decoded pixel layout
	// ("gray", "gray16", "rgb", "rgb64", "ycbcr", "cmyk", "paletted").
	ColorModel string
	Size       int64
}

// FromConfig builds a result from a decoded image header.
func FromConfig(path, format string, cfg image.Config, size int64) *ProbeResult {
	return &ProbeResult{
		Path:       path,
		Format:     format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ColorModel: modelName(cfg.ColorModel),
		Size:       size,
	}
}

// Pixels returns Width*Height.
func (p *ProbeResult) Pixels() int64 {
	return int64(p.Width) * int64(p.Height)
}

// Megapixels returns the pixel count in millions.
func (p *ProbeResult) Megapixels() float64 {
	return float64(p.Pixels()) / 1e6
}

// Resolution returns "WxH", or "unknown" when either side is missing.
func (p *ProbeResult) Resolution() string {
	if p.Width <= 0 || p.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.Width) + "x" + strconv.Itoa(p.Height)
}

// Channels is the number of channels the native codec decodes this image
// to: 1 for grayscale, 3 for everything else.
func (p *ProbeResult) Channels() int {
	switch p.ColorModel {
	case "gray", "gray16":
		return 1
	default:
		return 3
	}
}

func modelName(m color.Model) string {
	switch m {
	case color.GrayModel:
		return "gray"
	case color.Gray16Model:
		return "gray16"
	case color.RGBAModel, color.NRGBAModel:
		return "rgb"
	case color.RGBA64Model, color.NRGBA64Model:
		return "rgb64"
	case color.YCbCrModel, color.NYCbCrAModel:
		return "ycbcr"
	case color.CMYKModel:
		return "cmyk"
	}
	if _, ok := m.(color.Palette); ok {
		return "paletted"
	}
	return "unknown"
}
