// Package config handles tdstool configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-3ds/pkg/convert"
	"github.com/Faultbox/midgard-3ds/pkg/encoding"
	"github.com/Faultbox/midgard-3ds/pkg/formats"
)

// Config holds all tool settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds the knobs of the 3DS importer.
type ImportConfig struct {
	DefaultMaterialToken string  `yaml:"default_material_token"` // Marker in exporter-written default material names
	DefaultMaterialGray  float32 `yaml:"default_material_gray"`  // Diffuse level of a generated default material
	NameEncoding         string  `yaml:"name_encoding"`          // raw, windows-1252, cp437 or latin1
	SkipAxisCorrection   bool    `yaml:"skip_axis_correction"`
	SkipMasterScale      bool    `yaml:"skip_master_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			DefaultMaterialToken: formats.DefaultMaterialToken,
			DefaultMaterialGray:  formats.DefaultMaterialGray,
			NameEncoding:         string(encoding.Raw),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the import settings into importer options.
func (c ImportConfig) Options() (convert.Options, error) {
	enc, err := encoding.ParseNameEncoding(c.NameEncoding)
	if err != nil {
		return convert.Options{}, fmt.Errorf("import.name_encoding: %w", err)
	}
	if c.DefaultMaterialGray < 0 || c.DefaultMaterialGray > 1 {
		return convert.Options{}, fmt.Errorf("import.default_material_gray: %v is outside [0, 1]", c.DefaultMaterialGray)
	}
	return convert.Options{
		NameEncoding: enc,
		DefaultMaterial: formats.DefaultMaterialOptions{
			Token: c.DefaultMaterialToken,
			Gray:  c.DefaultMaterialGray,
		},
		SkipAxisCorrection: c.SkipAxisCorrection,
		SkipMasterScale:    c.SkipMasterScale,
	}, nil
}
