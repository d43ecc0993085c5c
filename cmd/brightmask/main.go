// Command brightmask is the CLI entrypoint for the bright-pixel mask
// pipeline.
//
// It loads .env and flags, validates configuration, and either runs
// system diagnostics (--check), the header analysis (--analyze), or the
// parallel mask pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/backmassage/brightmask/internal/check"
	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/display"
	"github.com/backmassage/brightmask/internal/imageio"
	"github.com/backmassage/brightmask/internal/logging"
	"github.com/backmassage/brightmask/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	args := os.Args[1:]
	cfg := config.DefaultConfig()
	if env := config.EnvFileFromArgs(args); env != "" {
		cfg.EnvFile = env
	}
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "brightmask: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, args, version); err != nil {
		fmt.Fprintf(os.Stderr, "brightmask: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "brightmask: %v\n", err)
		return 1
	}

	runID := uuid.NewString()
	log, err := logging.NewLogger(&cfg, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "brightmask: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner(os.Stdout)
	codec := imageio.Default()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, codec, log) {
			return 1
		}
		return 0
	}

	log.Info("=== brightmask v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputDir)
	log.Debug("Run ID: %s", runID)
	if cfg.DryRun {
		log.Warn("DRY RUN: no masks will be written")
	}

	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v: %s", err, cfg.InputDir)
		return 1
	}
	if !cfg.DryRun {
		if err := check.CheckWritable(cfg.InputDir); err != nil {
			log.Warn("%v; masks will be reported as write errors", err)
		}
	}

	// Phase 3: Signal handling. SIGINT/SIGTERM stop new images from
	// starting; images already in flight run to completion.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing images in flight…")
		cancel()
	}()

	if cfg.Analyze {
		if err := pipeline.Analyze(ctx, &cfg, log); err != nil {
			return 1
		}
		return 0
	}

	// Phase 4: Run pipeline (discover → dispatch → aggregate).
	stats, err := pipeline.Run(ctx, &cfg, log, codec)
	if err != nil || !stats.OK() {
		return 1
	}
	return 0
}
