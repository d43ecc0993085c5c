// Package logging wraps zerolog behind the leveled printf-style API used
// across the CLI: a colored console stream for humans and an optional
// append-only JSON log file for machines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"

	"github.com/backmassage/brightmask/internal/config"
	"github.com/backmassage/brightmask/internal/term"
)

const consoleTimeFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with an optional file
// sink. Children created by [Logger.With] share the root's sinks.
type Logger struct {
	zl zerolog.Logger

	mu   sync.Mutex
	file *os.File // owned by the root logger only
}

// NewLogger builds the console writer from cfg (colors, verbosity) and
// optionally opens cfg.LogFile. Every line carries runID in the "run" field.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config, runID string) (*Logger, error) {
	color := term.Configure(cfg.ColorMode)

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
	}

	var fileSink io.Writer
	if file != nil {
		fileSink = file
	}
	// NewColorable translates ANSI sequences on Windows consoles and is a
	// pass-through elsewhere.
	l := newLogger(colorable.NewColorable(os.Stdout), colorable.NewColorable(os.Stderr),
		fileSink, color, cfg.Verbose, runID)
	l.file = file
	return l, nil
}

// newLogger assembles the writer graph: errors go to errOut, everything else
// to out, and all levels are mirrored as JSON to file when non-nil.
func newLogger(out, errOut, file io.Writer, color, verbose bool, runID string) *Logger {
	console := levelSplitWriter{
		out:    zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: consoleTimeFormat},
		errOut: zerolog.ConsoleWriter{Out: errOut, NoColor: !color, TimeFormat: consoleTimeFormat},
	}

	var w io.Writer = console
	if file != nil {
		w = zerolog.MultiLevelWriter(console, file)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if runID != "" {
		ctx = ctx.Str("run", runID)
	}
	return &Logger{zl: ctx.Logger()}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger that adds key=value to every line.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs at INFO level tagged status=success.
func (l *Logger) Success(format string, args ...any) {
	l.zl.Info().Str("status", "success").Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, on stderr.
func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Outlier logs at WARN level tagged flag=outlier.
func (l *Logger) Outlier(format string, args ...any) {
	l.zl.Warn().Str("flag", "outlier").Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the logger was built verbose.
func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

// levelSplitWriter routes ERROR and above to errOut.
type levelSplitWriter struct {
	out, errOut io.Writer
}

func (w levelSplitWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w levelSplitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel && level != zerolog.NoLevel {
		return w.errOut.Write(p)
	}
	return w.out.Write(p)
}
