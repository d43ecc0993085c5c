package pipeline

import (
	"sync"
	"time"

	"github.com/backmassage/brightmask/internal/mask"
)

// Failure is one entry of the failure report.
type Failure struct {
	Path   string
	Reason string
}

// Aggregator accumulates unit results into the run total and the failure
// report. Record is safe for concurrent use.
type Aggregator struct {
	mu       sync.Mutex
	total    int64
	failures []Failure

	succeeded int
	maskBytes int64
}

// Record folds one result in. Counted results add their bright count;
// non-successful results are appended to the failure report.
func (a *Aggregator) Record(res mask.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if res.Counted {
		a.total += res.BrightCount
	}
	if !res.OK() {
		a.failures = append(a.failures, Failure{Path: res.Source, Reason: res.Reason})
		return
	}
	a.succeeded++
	a.maskBytes += res.MaskSize
}

// Finalize returns the run total and the failures in the order they were
// recorded. Call it only after every result has been recorded.
func (a *Aggregator) Finalize() (int64, []Failure) {
	a.mu.Lock()
	defer a.mu.Unlock()
	failures := make([]Failure, len(a.failures))
	copy(failures, a.failures)
	return a.total, failures
}

// RunStats is the outcome of a batch run.
type RunStats struct {
	Total       int
	Succeeded   int
	Failed      int
	BrightTotal int64
	// MaskBytes is the on-disk size of all masks written.
	MaskBytes int64
	Elapsed   time.Duration
	Failures  []Failure
}

// Stats snapshots the aggregator into a RunStats for total inputs.
func (a *Aggregator) Stats(total int, elapsed time.Duration) RunStats {
	bright, failures := a.Finalize()
	a.mu.Lock()
	defer a.mu.Unlock()
	return RunStats{
		Total:       total,
		Succeeded:   a.succeeded,
		Failed:      len(failures),
		BrightTotal: bright,
		MaskBytes:   a.maskBytes,
		Elapsed:     elapsed,
		Failures:    failures,
	}
}

// OK reports whether every input succeeded.
func (s *RunStats) OK() bool {
	return s.Failed == 0
}
