package mask

import (
	"time"

	"github.com/backmassage/brightmask/internal/imageio"
)

// Status is the outcome of one unit of work.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is what one unit of work produces for one source image. It is
// built once by the unit and not mutated afterwards.
type Result struct {
	Source      string
	BrightCount int64
	// Mask is the single-channel mask, nil when decoding failed.
	Mask *imageio.Grid
	// MaskPath is where the mask was written; empty if nothing was written.
	MaskPath string
	// MaskSize is the size of the written mask file in bytes.
	MaskSize int64
	Status   Status
	Reason   string
	Err      error
	// Counted reports whether BrightCount contributes to the run total.
	// A write failure still counts: the count never depends on persistence.
	Counted  bool
	Duration time.Duration
}

// OK reports whether the unit fully succeeded.
func (r Result) OK() bool { return r.Status == StatusSuccess }

// Interrupted builds the result recorded for a path that was never started
// because the run was cancelled.
func Interrupted(path string, err error) Result {
	return Result{
		Source: path,
		Status: StatusFailure,
		Reason: ReasonInterrupted,
		Err:    err,
	}
}
