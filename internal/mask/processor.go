// Package mask implements the per-image unit of work: decode a source
// image, mark pixels whose every channel exceeds the threshold, count them,
// and persist the mask next to the source.
package mask

import (
	"fmt"
	"os"
	"time"

	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/imageio"
	"github.com/backmassage/brightmask/internal/logging"
	"github.com/backmassage/brightmask/internal/naming"
)

// Processor runs units of work. It holds no per-image state, so a single
// Processor may be shared by every worker.
type Processor struct {
	Codec     imageio.Codec
	Threshold uint8
	Suffix    string
	DryRun    bool
	Log       *logging.Logger
}

// NewProcessor builds a Processor from a validated config.
func NewProcessor(cfg *config.Config, codec imageio.Codec, log *logging.Logger) *Processor {
	if log == nil {
		log = logging.Discard()
	}
	return &Processor{
		Codec:     codec,
		Threshold: uint8(cfg.Threshold),
		Suffix:    cfg.MaskSuffix,
		DryRun:    cfg.DryRun,
		Log:       log,
	}
}

// Process runs decode → threshold → collapse → count → persist for one
// image. Failures are captured in the returned Result, never returned.
func (p *Processor) Process(path string) Result {
	start := time.Now()
	res := Result{Source: path}

	grid, err := p.Codec.Decode(path)
	if err != nil {
		p.Log.Warn("Cannot decode %s: %v", path, err)
		res.Status = StatusFailure
		res.Reason = ReasonDecode
		res.Err = fmt.Errorf("%w: %v", ErrDecode, err)
		return finish(&res, start)
	}

	m := Collapse(Threshold(grid, p.Threshold))
	res.Mask = m
	res.BrightCount = CountNonZero(m)
	res.Counted = true

	if p.DryRun {
		p.Log.Debug("Dry run, not writing mask for %s", path)
		res.Status = StatusSuccess
		return finish(&res, start)
	}

	out := naming.MaskPath(path, p.Suffix)
	if err := p.Codec.Encode(m, out); err != nil {
		p.Log.Warn("Cannot write mask %s: %v", out, err)
		res.Status = StatusFailure
		res.Reason = ReasonWrite
		res.Err = fmt.Errorf("%w: %v", ErrWrite, err)
		return finish(&res, start)
	}

	res.MaskPath = out
	if fi, err := os.Stat(out); err == nil {
		res.MaskSize = fi.Size()
	}
	res.Status = StatusSuccess
	p.Log.Debug("Processed %s, found %d bright pixels", path, res.BrightCount)
	return finish(&res, start)
}

func finish(res *Result, start time.Time) Result {
	res.Duration = time.Since(start)
	return *res
}
