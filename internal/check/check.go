// Package check provides system diagnostics (--check mode) and pre-pipeline
// validation (CheckDeps) of the codec backend and the input directory.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/imageio"
	"github.com/backmassage/brightmask/internal/naming"
)

// Sentinel errors returned by CheckDeps and CheckWritable.
var (
	ErrInputMissing     = errors.New("input directory does not exist")
	ErrInputNotDir      = errors.New("input path is not a directory")
	ErrInputUnreadable  = errors.New("input directory is not readable")
	ErrInputNotWritable = errors.New("input directory is not writable")
	ErrCodecUnusable    = errors.New("codec backend cannot write masks")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// RunCheck runs the interactive --check flow: prints the codec backend and
// its formats, probes the codec with a tiny mask, and inspects the input
// directory. It reports whether everything passed.
func RunCheck(cfg *config.Config, codec imageio.Codec, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkCodec(codec, log)
	ok = checkInputDir(cfg, log) && ok
	if cfg.InputDir != "" {
		reportOrphans(cfg, log)
	}
	return ok
}

func checkCodec(codec imageio.Codec, log Logger) bool {
	log.Info("Codec backend: %s", codec.Name())
	log.Info("  Formats: %v", codec.Formats())
	if err := roundTrip(codec, os.TempDir()); err != nil {
		log.Error("Codec self-test failed: %v", err)
		return false
	}
	log.Success("Codec self-test passed")
	return true
}

func checkInputDir(cfg *config.Config, log Logger) bool {
	if err := checkDir(cfg.InputDir); err != nil {
		log.Error("%v: %s", err, cfg.InputDir)
		return false
	}
	log.Success("Input directory readable: %s", cfg.InputDir)
	if err := CheckWritable(cfg.InputDir); err != nil {
		log.Warn("%v; masks will fail with write errors", err)
	} else {
		log.Success("Input directory writable")
	}
	return true
}

// reportOrphans lists masks whose source image no longer exists.
func reportOrphans(cfg *config.Config, log Logger) {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return
	}
	var orphans int
	for _, e := range entries {
		src, ok := naming.SourceOf(e.Name(), cfg.MaskSuffix)
		if !ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(cfg.InputDir, src)); os.IsNotExist(err) {
			log.Warn("  Orphaned mask: %s", e.Name())
			orphans++
		}
	}
	if orphans == 0 {
		log.Info("  No orphaned masks")
	}
}

// CheckDeps is the pre-pipeline validation: the input directory must exist
// and be listable. Returns a sentinel error on failure. Writability is not
// required; see [CheckWritable].
func CheckDeps(cfg *config.Config) error {
	return checkDir(cfg.InputDir)
}

// CheckWritable reports whether new files can be created in dir. An
// unwritable directory does not stop a run: each mask write fails on its
// own and the bright counts still contribute.
func CheckWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".brightmask-check-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputNotWritable, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}

// --- internal helpers ---

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrInputMissing
		}
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if !fi.IsDir() {
		return ErrInputNotDir
	}
	if _, err := os.ReadDir(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	return nil
}

// roundTrip encodes and decodes a 2x2 mask in dir.
func roundTrip(codec imageio.Codec, dir string) error {
	f, err := os.CreateTemp(dir, "brightmask-selftest-*.png")
	if err != nil {
		return err
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	g := imageio.NewGrid(2, 2, 1)
	g.Pix[0], g.Pix[3] = 255, 255
	if err := codec.Encode(g, path); err != nil {
		return fmt.Errorf("%w: %v", ErrCodecUnusable, err)
	}
	back, err := codec.Decode(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCodecUnusable, err)
	}
	if back.Pixels() != 4 {
		return fmt.Errorf("%w: read back %dx%d", ErrCodecUnusable, back.Width, back.Height)
	}
	return nil
}
