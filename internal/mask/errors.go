package mask

import "errors"

// Sentinel errors wrapped into Result.Err. Both are local to one unit of
// work and never abort the run.
var (
	ErrDecode = errors.New("decode error")
	ErrWrite  = errors.New("write error")
)

// Failure reasons reported in Result.Reason and the run's failure list.
const (
	ReasonDecode      = "decode error"
	ReasonWrite       = "write error"
	ReasonInterrupted = "interrupted"
)
