// Package pipeline orchestrates file discovery, parallel per-image
// processing, and batch summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/display"
	"github.com/backmassage/brightmask/internal/imageio"
	"github.com/backmassage/brightmask/internal/logging"
	"github.com/backmassage/brightmask/internal/mask"
)

// Run is the top-level batch entry point. It discovers eligible images,
// processes them in parallel, logs the summary, and returns aggregate stats.
// The error is non-nil only when discovery fails.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, codec imageio.Codec) (RunStats, error) {
	files, err := Discover(cfg.InputDir, cfg.MaskSuffix)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return RunStats{}, err
	}

	logBatchHeader(cfg, log, codec, len(files))

	d := &Dispatcher{
		Processor: mask.NewProcessor(cfg, codec, log),
		Workers:   cfg.Workers,
		Log:       log,
	}
	stats := d.Run(ctx, files)

	logSummary(cfg, log, &stats)
	return stats, nil
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, codec imageio.Codec, total int) {
	if total == 0 {
		log.Warn("No eligible images found in %s", cfg.InputDir)
	} else {
		log.Info("Found %d images in %s", total, cfg.InputDir)
	}
	workers := "auto"
	if cfg.Workers > 0 {
		workers = fmt.Sprint(cfg.Workers)
	}
	log.Info("Codec: %s, workers: %s, threshold: > %d on every channel", codec.Name(), workers, cfg.Threshold)
	if cfg.DryRun {
		log.Info("Dry run: masks will not be written")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d succeeded, %d failed in %s", stats.Succeeded, stats.Failed, stats.Elapsed.Round(time.Millisecond))
	if cfg.DryRun {
		log.Info("  Masks written: none (dry run)")
	} else {
		log.Info("  Mask data written: %s", display.FormatBytes(stats.MaskBytes))
	}
	for _, f := range stats.Failures {
		log.Error("  Failed: %s (%s)", f.Path, f.Reason)
	}
	log.Success("Total bright pixels across all images: %d", stats.BrightTotal)
}
