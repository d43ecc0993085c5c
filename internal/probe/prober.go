package probe

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"os"

	// Header decoders register themselves with image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Probe reads the header of the image at path. Only the header is read, so
// probing is cheap even for very large files.
func Probe(ctx context.Context, path string) (*ProbeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	return ProbeReader(path, bufio.NewReader(f), fi.Size())
}

// ProbeReader decodes an image header from r. Exported for testing without
// touching the filesystem.
func ProbeReader(path string, r io.Reader, size int64) (*ProbeResult, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	return FromConfig(path, format, cfg, size), nil
}
