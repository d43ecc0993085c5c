// Package term provides ANSI color state and terminal detection.
//
// Colors are package-level variables because the logger, the banner and the
// analysis table all decorate output with them. [Configure] sets them once
// during startup; when colors are disabled the variables are empty strings,
// making string concatenation a no-op.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/brightmask/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Orange  = ""
	Magenta = ""
	NC      = "" // Reset sequence.
)

// Configure resolves the color mode and sets the package-level ANSI
// variables. It reports whether colors ended up enabled.
func Configure(mode config.ColorMode) bool {
	if !Resolve(mode, os.Stdout) {
		Red, Green, Yellow, Orange, Magenta, NC = "", "", "", "", "", ""
		return false
	}
	Red = "\033[1;91m"
	Green = "\033[1;92m"
	Yellow = "\033[1;93m"
	Orange = "\033[1;38;5;208m"
	Magenta = "\033[1;95m"
	NC = "\033[0m"
	return true
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// Resolve determines whether colors should be enabled for out based on the
// configured mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func Resolve(mode config.ColorMode, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(out) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a terminal, including Cygwin
// and MSYS ptys on Windows.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
