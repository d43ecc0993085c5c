package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/srv/images", "/srv/images"},
		{"single trailing slash", "/srv/images/", "/srv/images"},
		{"multiple trailing slashes", "/srv/images///", "/srv/images"},
		{"root path", "/", "/"},
		{"relative path", "data", "data"},
		{"relative with slash", "data/", "data"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		wantErr   bool
	}{
		{"default is valid", DefaultThreshold, false},
		{"lowest", 1, false},
		{"highest", 254, false},
		{"zero is invalid", 0, true},
		{"255 is invalid", 255, true},
		{"negative is invalid", -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Threshold = tt.threshold
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Workers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"zero means all CPUs", 0, false},
		{"explicit bound", 4, false},
		{"negative is invalid", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Workers = tt.workers
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresInputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when the input directory is empty")
	}
}

func TestValidate_AnalyzeExcludesDryRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyze = true
	cfg.DryRun = true
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject --analyze with --dry-run")
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InputDir != "data" {
		t.Errorf("default InputDir = %q, want %q", cfg.InputDir, "data")
	}
	if cfg.Threshold != 200 {
		t.Errorf("default Threshold = %d, want 200", cfg.Threshold)
	}
	if cfg.MaskSuffix != "_mask.png" {
		t.Errorf("default MaskSuffix = %q, want %q", cfg.MaskSuffix, "_mask.png")
	}
	if cfg.Workers != 0 {
		t.Errorf("default Workers = %d, want 0", cfg.Workers)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{"-w", "3", "--threshold=180", "--no-color", "--dry-run", "images/"}
	if err := ParseFlags(&cfg, args, "test"); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Threshold != 180 {
		t.Errorf("Threshold = %d, want 180", cfg.Threshold)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
	if !cfg.DryRun {
		t.Error("DryRun should be set")
	}
	if cfg.InputDir != "images" {
		t.Errorf("InputDir = %q, want %q", cfg.InputDir, "images")
	}
}

func TestParseFlags_TooManyPositional(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"a", "b"}, "test"); err == nil {
		t.Error("ParseFlags should reject two positional args")
	}
}

func TestParseFlags_KeepsEnvValuesAsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 7
	if err := ParseFlags(&cfg, nil, "test"); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Workers != 7 {
		t.Errorf("Workers = %d, want 7 (flags must not reset env overrides)", cfg.Workers)
	}
}

func TestEnvFileFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"absent", []string{"-w", "2"}, ""},
		{"separate value", []string{"--env", "prod.env"}, "prod.env"},
		{"inline value", []string{"-env=ci.env", "dir"}, "ci.env"},
		{"positional named env", []string{"env"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnvFileFromArgs(tt.args); got != tt.want {
				t.Errorf("EnvFileFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv(EnvWorkers, "5")
	t.Setenv(EnvThreshold, "150")
	t.Setenv(EnvInputDir, "/srv/in/")
	t.Setenv(EnvColor, "never")

	cfg := DefaultConfig()
	cfg.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Workers != 5 || cfg.Threshold != 150 {
		t.Errorf("Workers/Threshold = %d/%d, want 5/150", cfg.Workers, cfg.Threshold)
	}
	if cfg.InputDir != "/srv/in" {
		t.Errorf("InputDir = %q, want %q", cfg.InputDir, "/srv/in")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
}

func TestLoadEnv_FromFile(t *testing.T) {
	// Registered with t.Setenv so the values godotenv writes are restored.
	t.Setenv(EnvThreshold, "")
	t.Setenv(EnvVerbose, "")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("BRIGHTMASK_THRESHOLD=222\nBRIGHTMASK_VERBOSE=true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvThreshold)
	os.Unsetenv(EnvVerbose)

	cfg := DefaultConfig()
	cfg.EnvFile = path
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Threshold != 222 {
		t.Errorf("Threshold = %d, want 222", cfg.Threshold)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be set from env file")
	}
}

func TestLoadEnv_BadNumber(t *testing.T) {
	t.Setenv(EnvWorkers, "many")
	cfg := DefaultConfig()
	cfg.EnvFile = ""
	if err := LoadEnv(&cfg); err == nil {
		t.Error("LoadEnv should reject a non-numeric worker count")
	}
}
