package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into processing, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config values hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (typically os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, too many positional args).
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("brightmask", flag.ContinueOnError)
	fs.Usage = func() { printUsage(version) }

	var negated negatedFlags

	defineProcessingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "brightmask v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either override a mode (forceColor, noColor) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineProcessingFlags registers -i/--input, -w/--workers, -t/--threshold.
func defineProcessingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&dirValue{&cfg.InputDir}, "input", "Directory to scan for images")
	fs.Var(&dirValue{&cfg.InputDir}, "i", "Same as --input")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Max images processed concurrently (0 = all CPUs)")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Bright threshold; every channel must exceed it")
	fs.IntVar(&cfg.Threshold, "t", cfg.Threshold, "Same as --threshold")
}

// defineBehaviorFlags registers dry-run, analyze, check.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Count bright pixels without writing masks")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.BoolVar(&cfg.Analyze, "analyze", cfg.Analyze, "Tabulate image dimensions and formats, then exit")
	fs.BoolVar(&cfg.Analyze, "a", cfg.Analyze, "Same as --analyze")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", cfg.CheckOnly, "Same as --check")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log, --env.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
	// Only recorded for --help; the env file is loaded before flags are parsed.
	fs.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "Environment file (read before flags)")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs accepts at most one positional arg, the input directory.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one input_dir, got %d arguments", len(args))
	}
}

// EnvFileFromArgs scans args for --env/-env before full parsing so the env
// file can be loaded ahead of flag overrides. It returns "" when absent.
func EnvFileFromArgs(args []string) string {
	for i, a := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if name != "env" || !strings.HasPrefix(a, "-") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "brightmask v" + version + " - parallel bright-pixel mask generator"},
		{"", ""},
		{"  brightmask [OPTIONS] [input_dir]", ""},
		{"", ""},
		{"Processing", ""},
		{"  -i, --input <dir>", "Directory to scan (default: data)"},
		{"  -w, --workers <n>", "Max images in flight (default: all CPUs)"},
		{"  -t, --threshold <n>", "Every channel must exceed this (default: 200)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Count only; do not write mask files"},
		{"  -a, --analyze", "Tabulate image formats and sizes, then exit"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append JSON logs to file"},
		{"  --env <path>", "Environment file (default: .env)"},
		{"  -c, --check", "Codec and directory diagnostics"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum and path fields can be used with flag.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type dirValue struct{ p *string }

func (d *dirValue) String() string {
	if d.p == nil {
		return ""
	}
	return *d.p
}

func (d *dirValue) Set(s string) error {
	*d.p = NormalizeDirArg(s)
	return nil
}
