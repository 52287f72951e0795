package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/midgard-3ds/pkg/encoding"
	"github.com/Faultbox/midgard-3ds/pkg/formats"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Import.DefaultMaterialToken != "default" {
		t.Errorf("expected token 'default', got %s", cfg.Import.DefaultMaterialToken)
	}
	if cfg.Import.DefaultMaterialGray != 0.3 {
		t.Errorf("expected gray 0.3, got %f", cfg.Import.DefaultMaterialGray)
	}
	if cfg.Import.NameEncoding != "raw" {
		t.Errorf("expected encoding 'raw', got %s", cfg.Import.NameEncoding)
	}
	if cfg.Import.SkipAxisCorrection || cfg.Import.SkipMasterScale {
		t.Error("expected axis correction and master scale to be applied by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestImportOptions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ImportConfig
		wantEnc encoding.NameEncoding
		wantErr bool
	}{
		{"defaults", Default().Import, encoding.Raw, false},
		{"alias", ImportConfig{NameEncoding: "CP1252"}, encoding.Windows1252, false},
		{"dos", ImportConfig{NameEncoding: "cp437", DefaultMaterialGray: 0.5}, encoding.CP437, false},
		{"unknown encoding", ImportConfig{NameEncoding: "ebcdic"}, "", true},
		{"gray out of range", ImportConfig{DefaultMaterialGray: 2}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.Options()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.NameEncoding != tt.wantEnc {
				t.Errorf("encoding = %q, want %q", opts.NameEncoding, tt.wantEnc)
			}
			want := formats.DefaultMaterialOptions{Token: tt.cfg.DefaultMaterialToken, Gray: tt.cfg.DefaultMaterialGray}
			if opts.DefaultMaterial != want {
				t.Errorf("default material = %+v, want %+v", opts.DefaultMaterial, want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
import:
  default_material_token: "fallback"
  default_material_gray: 0.5
  name_encoding: "windows-1252"
  skip_axis_correction: true
  skip_master_scale: true

logging:
  level: "debug"
  log_file: "tdstool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Import.DefaultMaterialToken != "fallback" {
		t.Errorf("expected token 'fallback', got %s", cfg.Import.DefaultMaterialToken)
	}
	if cfg.Import.DefaultMaterialGray != 0.5 {
		t.Errorf("expected gray 0.5, got %f", cfg.Import.DefaultMaterialGray)
	}
	if cfg.Import.NameEncoding != "windows-1252" {
		t.Errorf("expected encoding 'windows-1252', got %s", cfg.Import.NameEncoding)
	}
	if !cfg.Import.SkipAxisCorrection || !cfg.Import.SkipMasterScale {
		t.Error("expected skip flags to be loaded")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "tdstool.log" {
		t.Errorf("expected log file 'tdstool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("import:\n  name_encoding: cp437\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Import.NameEncoding != "cp437" {
		t.Errorf("expected encoding 'cp437', got %s", cfg.Import.NameEncoding)
	}
	// Untouched keys keep their defaults.
	if cfg.Import.DefaultMaterialGray != 0.3 || cfg.Logging.Level != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load, got %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty file changed the config: %+v", cfg)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad type", "import:\n  default_material_gray: not a number\n"},
		{"bad syntax", "import:\n  name_encoding: raw\n  invalid syntax here\n"},
		{"unknown key", "graphics:\n  width: 800\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if filepath.Base(dir) != "midgard-3ds" {
		t.Errorf("ConfigDir = %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("import:\n  name_encoding: raw\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "/tmp/tdstool.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/tdstool.log" {
					t.Errorf("expected log file /tmp/tdstool.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
		{
			name:  "encoding flag",
			setup: func() { *flagEncoding = "latin1" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Import.NameEncoding != "latin1" {
					t.Errorf("expected encoding latin1, got %s", cfg.Import.NameEncoding)
				}
			},
			teardown: func() { *flagEncoding = "" },
		},
		{
			name:  "axis flag",
			setup: func() { *flagNoAxis = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Import.SkipAxisCorrection {
					t.Error("expected axis correction to be skipped")
				}
			},
			teardown: func() { *flagNoAxis = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
import:
  name_encoding: cp437
  default_material_gray: 0.6
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagEncoding = "windows-1252"
	defer func() {
		*flagConfig = ""
		*flagEncoding = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Encoding should be from flag, not file
	if cfg.Import.NameEncoding != "windows-1252" {
		t.Errorf("expected encoding windows-1252 from flag, got %s", cfg.Import.NameEncoding)
	}
	// Gray should be from file since no flag overrides it
	if cfg.Import.DefaultMaterialGray != 0.6 {
		t.Errorf("expected gray 0.6 from file, got %f", cfg.Import.DefaultMaterialGray)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level from $%s, got %s", envConfig, cfg.Logging.Level)
	}

	t.Setenv(envConfig, path+".missing")
	if _, err := Load(); err == nil {
		t.Error("expected error for a missing explicit path")
	}
}

func TestLoadRejectsBadEncoding(t *testing.T) {
	*flagConfig = filepath.Join(t.TempDir(), "missing-is-not-searched.yaml")
	*flagEncoding = "klingon"
	defer func() {
		*flagConfig = ""
		*flagEncoding = ""
	}()

	// The explicit path does not exist, so the file load fails first.
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}

	*flagConfig = ""
	t.Setenv(envConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Import.NameEncoding = "cp437"
	cfg.Import.SkipMasterScale = true
	cfg.Logging.Level = "warn"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}
