package pipeline

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/brightmask/internal/display"
	"github.com/backmassage/brightmask/internal/logging"
	"github.com/backmassage/brightmask/internal/mask"
)

// Processor runs one unit of work. *mask.Processor is the production
// implementation.
type Processor interface {
	Process(path string) mask.Result
}

// Dispatcher fans paths out to a bounded set of concurrent units and feeds
// every result to a single Aggregator.
type Dispatcher struct {
	Processor Processor
	// Workers bounds concurrent units; 0 means runtime.GOMAXPROCS(0).
	Workers int
	Log     *logging.Logger
}

func (d *Dispatcher) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run processes every path exactly once and returns once all started units
// have finished. Once ctx is cancelled no further units are started; each
// remaining path is recorded as an interrupted failure.
func (d *Dispatcher) Run(ctx context.Context, paths []string) RunStats {
	start := time.Now()
	log := d.Log
	if log == nil {
		log = logging.Discard()
	}
	n := d.workers()

	var agg Aggregator
	results := make(chan mask.Result, n)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		done := 0
		for res := range results {
			agg.Record(res)
			done++
			logResult(log, res, done, len(paths))
		}
	}()

	// Worker IDs are only labels for log lines; the errgroup limit is
	// what bounds concurrency.
	ids := make(chan int, n)
	for i := 1; i <= n; i++ {
		ids <- i
	}

	var g errgroup.Group
	g.SetLimit(n)
	interrupted := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			results <- mask.Interrupted(path, err)
			interrupted++
			continue
		}
		path := path
		g.Go(func() error {
			id := <-ids
			defer func() { ids <- id }()
			log.With("worker", id).Info("Processing %s on worker %d", path, id)
			results <- d.Processor.Process(path)
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-collected

	if interrupted > 0 {
		log.Warn("Interrupted, %d file(s) not started", interrupted)
	}
	return agg.Stats(len(paths), time.Since(start))
}

func logResult(log *logging.Logger, res mask.Result, done, total int) {
	name := filepath.Base(res.Source)
	switch {
	case res.OK():
		log.Success("[%d/%d] %s: %s bright pixels (%s)",
			done, total, name, display.FormatCount(res.BrightCount), res.Duration.Round(time.Millisecond))
	case res.Reason == mask.ReasonInterrupted:
		log.Debug("[%d/%d] %s: not started", done, total, name)
	default:
		log.Error("[%d/%d] %s: %s", done, total, name, res.Reason)
	}
}
