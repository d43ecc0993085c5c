package mask

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/imageio"
	"github.com/backmassage/brightmask/internal/logging"
)

// --- Threshold / Collapse / Count ---

func TestBrightPixelRule(t *testing.T) {
	tests := []struct {
		name string
		px   []uint8
		want int64
	}{
		{"all channels bright", []uint8{255, 255, 255}, 1},
		{"one dark channel", []uint8{201, 201, 199}, 0},
		{"exactly at threshold", []uint8{200, 200, 200}, 0},
		{"just above threshold", []uint8{201, 201, 201}, 1},
		{"two bright one dark", []uint8{255, 0, 255}, 0},
		{"black", []uint8{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &imageio.Grid{Width: 1, Height: 1, Channels: 3, Pix: tt.px}
			m := Collapse(Threshold(g, 200))
			if m.Channels != 1 {
				t.Fatalf("collapsed mask has %d channels", m.Channels)
			}
			if got := CountNonZero(m); got != tt.want {
				t.Errorf("count(%v) = %d, want %d", tt.px, got, tt.want)
			}
		})
	}
}

func TestCollapse_CountsEachPixelOnce(t *testing.T) {
	g := imageio.NewGrid(4, 1, 3)
	for i := range g.Pix {
		g.Pix[i] = 250
	}
	m := Collapse(Threshold(g, 200))
	if got := CountNonZero(m); got != 4 {
		t.Errorf("count = %d, want 4 (one per pixel, not per channel)", got)
	}
}

func TestCollapse_SingleChannelPassThrough(t *testing.T) {
	g := &imageio.Grid{Width: 3, Height: 1, Channels: 1, Pix: []uint8{100, 201, 255}}
	m := Collapse(Threshold(g, 200))
	if got := CountNonZero(m); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if m.Pix[1] != Set || m.Pix[0] != 0 {
		t.Errorf("mask = %v", m.Pix)
	}
}

// --- Processor ---

type fakeCodec struct {
	grid      *imageio.Grid
	decodeErr error
	encodeErr error
	encoded   map[string]*imageio.Grid
}

func (f *fakeCodec) Name() string      { return "fake" }
func (f *fakeCodec) Formats() []string { return []string{"png"} }

func (f *fakeCodec) Decode(string) (*imageio.Grid, error) {
	if f.decodeErr != nil {
		return nil, f.decodeErr
	}
	return f.grid, nil
}

func (f *fakeCodec) Encode(g *imageio.Grid, path string) error {
	if f.encodeErr != nil {
		return f.encodeErr
	}
	if f.encoded == nil {
		f.encoded = map[string]*imageio.Grid{}
	}
	f.encoded[path] = g
	return nil
}

func newTestProcessor(codec imageio.Codec, dryRun bool) *Processor {
	cfg := config.DefaultConfig()
	cfg.DryRun = dryRun
	return NewProcessor(&cfg, codec, logging.Discard())
}

func brightGrid(bright, total int) *imageio.Grid {
	g := imageio.NewGrid(total, 1, 3)
	for i := 0; i < bright*3; i++ {
		g.Pix[i] = 230
	}
	return g
}

func TestProcess_Success(t *testing.T) {
	codec := &fakeCodec{grid: brightGrid(3, 10)}
	res := newTestProcessor(codec, false).Process("in/a.png")

	if !res.OK() || !res.Counted {
		t.Fatalf("status = %v counted = %v, want success and counted", res.Status, res.Counted)
	}
	if res.BrightCount != 3 {
		t.Errorf("BrightCount = %d, want 3", res.BrightCount)
	}
	if res.MaskPath != "in/a.png_mask.png" {
		t.Errorf("MaskPath = %q", res.MaskPath)
	}
	if _, ok := codec.encoded["in/a.png_mask.png"]; !ok || len(codec.encoded) != 1 {
		t.Errorf("encoded = %v, want exactly the one mask", codec.encoded)
	}
	if res.Mask == nil || res.Mask.Channels != 1 {
		t.Error("result should carry the single-channel mask")
	}
}

func TestProcess_DecodeError(t *testing.T) {
	codec := &fakeCodec{decodeErr: errors.New("truncated")}
	res := newTestProcessor(codec, false).Process("in/bad.png")

	if res.OK() || res.Counted {
		t.Fatal("decode failure must be a failure and not counted")
	}
	if res.Reason != ReasonDecode || !errors.Is(res.Err, ErrDecode) {
		t.Errorf("reason = %q err = %v", res.Reason, res.Err)
	}
	if res.BrightCount != 0 || res.Mask != nil || res.MaskPath != "" {
		t.Errorf("decode failure left output: %+v", res)
	}
	if len(codec.encoded) != 0 {
		t.Error("decode failure must not write a mask")
	}
}

func TestProcess_WriteErrorStillCounts(t *testing.T) {
	codec := &fakeCodec{grid: brightGrid(2, 4), encodeErr: errors.New("read-only fs")}
	res := newTestProcessor(codec, false).Process("in/a.png")

	if res.OK() {
		t.Fatal("write failure must be reported as failure")
	}
	if res.Reason != ReasonWrite || !errors.Is(res.Err, ErrWrite) {
		t.Errorf("reason = %q err = %v", res.Reason, res.Err)
	}
	if !res.Counted || res.BrightCount != 2 {
		t.Errorf("counted = %v count = %d, want counted 2", res.Counted, res.BrightCount)
	}
	if res.MaskPath != "" {
		t.Errorf("MaskPath = %q, want empty after failed write", res.MaskPath)
	}
}

func TestProcess_DryRunWritesNothing(t *testing.T) {
	codec := &fakeCodec{grid: brightGrid(1, 2)}
	res := newTestProcessor(codec, true).Process("in/a.png")

	if !res.OK() || res.BrightCount != 1 {
		t.Fatalf("dry run result = %+v", res)
	}
	if len(codec.encoded) != 0 || res.MaskPath != "" {
		t.Error("dry run must not write masks")
	}
}

func TestProcess_NativeCodecEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "spots.png")

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	// 16 white pixels, then darken three of them.
	img.Set(0, 0, color.RGBA{R: 201, G: 201, B: 199, A: 255})
	img.Set(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	img.Set(2, 0, color.RGBA{A: 255})
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	res := newTestProcessor(imageio.NativeCodec{}, false).Process(src)
	if !res.OK() {
		t.Fatalf("Process: %v", res.Err)
	}
	if res.BrightCount != 13 {
		t.Errorf("BrightCount = %d, want 13", res.BrightCount)
	}

	back, err := imageio.NativeCodec{}.Decode(src + "_mask.png")
	if err != nil {
		t.Fatalf("mask not readable: %v", err)
	}
	fi, err := os.Stat(res.MaskPath)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaskSize != fi.Size() {
		t.Errorf("MaskSize = %d, want on-disk size %d", res.MaskSize, fi.Size())
	}
	if back.Channels != 1 || CountNonZero(back) != 13 {
		t.Errorf("persisted mask: channels=%d count=%d", back.Channels, CountNonZero(back))
	}
}
