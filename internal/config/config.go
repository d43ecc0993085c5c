// Package config holds runtime configuration: defaults, environment and CLI
// flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

const (
	// DefaultInputDir is the scan directory when none is given, relative to
	// the working directory.
	DefaultInputDir = "data"

	// DefaultThreshold is the 8-bit sample value every channel must strictly
	// exceed for a pixel to count as bright.
	DefaultThreshold = 200

	// MaskSuffix is appended to a source path to name its mask artifact.
	// Any directory entry containing it is treated as a generated output.
	MaskSuffix = "_mask.png"

	// DefaultEnvFile is loaded if present; a missing file is not an error.
	DefaultEnvFile = ".env"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadEnv] and then [ParseFlags] before being passed (by
// pointer) to packages that need it.
type Config struct {
	// Paths.
	InputDir string // Default: "data". Set from the positional arg or --input.

	// Processing.
	Workers    int    // Max units in flight. 0 means runtime.GOMAXPROCS.
	Threshold  int    // Default: 200. Strict greater-than on every channel.
	MaskSuffix string // Fixed: "_mask.png".

	// Behavior flags.
	DryRun    bool // Count only; do not write mask files.
	Analyze   bool // Probe and tabulate images, then exit.
	CheckOnly bool // Run --check diagnostics and exit.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional JSON log file path.
	EnvFile   string    // Default: ".env".
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [LoadEnv] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		InputDir:   DefaultInputDir,
		Workers:    0,
		Threshold:  DefaultThreshold,
		MaskSuffix: MaskSuffix,
		DryRun:     false,
		Analyze:    false,
		CheckOnly:  false,
		Verbose:    false,
		ColorMode:  ColorAuto,
		EnvFile:    DefaultEnvFile,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks ranges and enum fields. An empty input directory is
// rejected; DefaultConfig sets it to "data".
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	// 255 would make every pixel fail the strict comparison; 0 would count
	// everything except pure black.
	if c.Threshold < 1 || c.Threshold > 254 {
		return fmt.Errorf("threshold must be between 1 and 254 (got %d)", c.Threshold)
	}
	if c.MaskSuffix == "" || filepath.Ext(c.MaskSuffix) != ".png" {
		return errors.New("mask suffix must end in .png")
	}
	if c.Analyze && c.DryRun {
		return errors.New("--analyze and --dry-run are mutually exclusive")
	}
	if c.InputDir == "" {
		return errors.New("need an input directory")
	}
	return nil
}
