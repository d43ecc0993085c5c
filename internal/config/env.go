package config

// This file layers environment variables (optionally loaded from a .env
// file) over the defaults. Flags are parsed afterwards and win.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by [LoadEnv].
const (
	EnvInputDir  = "BRIGHTMASK_INPUT_DIR"
	EnvWorkers   = "BRIGHTMASK_WORKERS"
	EnvThreshold = "BRIGHTMASK_THRESHOLD"
	EnvLogFile   = "BRIGHTMASK_LOG"
	EnvColor     = "BRIGHTMASK_COLOR"
	EnvVerbose   = "BRIGHTMASK_VERBOSE"
)

// LoadEnv loads cfg.EnvFile into the process environment (without
// overriding variables that are already set) and applies BRIGHTMASK_*
// overrides to cfg. A missing env file is ignored; a malformed one or an
// unparsable numeric variable is an error.
func LoadEnv(cfg *Config) error {
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", cfg.EnvFile, err)
		}
	}

	cfg.InputDir = NormalizeDirArg(getEnv(EnvInputDir, cfg.InputDir))
	cfg.LogFile = getEnv(EnvLogFile, cfg.LogFile)

	var err error
	if cfg.Workers, err = getEnvInt(EnvWorkers, cfg.Workers); err != nil {
		return err
	}
	if cfg.Threshold, err = getEnvInt(EnvThreshold, cfg.Threshold); err != nil {
		return err
	}

	if v := getEnv(EnvColor, ""); v != "" {
		cv := colorModeValue{&cfg.ColorMode}
		if err := cv.Set(v); err != nil {
			return fmt.Errorf("%s: %w", EnvColor, err)
		}
	}
	if v := getEnv(EnvVerbose, ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q)", EnvVerbose, v)
		}
		cfg.Verbose = b
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number (got %q)", key, v)
	}
	return n, nil
}
