package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/menta2k/photo-framer/pkg/framer"
)

// Config holds the application configuration. Values come from the stock
// defaults, optionally a JSON file, and PHOTOFRAMER_* environment variables.
type Config struct {
	FramePath        string  `json:"frame_path"         env:"PHOTOFRAMER_FRAME"             envDefault:"./frame.png"`
	InputDir         string  `json:"input_dir"          env:"PHOTOFRAMER_INPUT"             envDefault:"./input_images"`
	OutputDir        string  `json:"output_dir"         env:"PHOTOFRAMER_OUTPUT"            envDefault:"./output_images"`
	MarginPercent    float64 `json:"margin_percent"     env:"PHOTOFRAMER_MARGIN"            envDefault:"5.0"`
	PortraitScale    float64 `json:"portrait_scale"     env:"PHOTOFRAMER_PORTRAIT_SCALE"    envDefault:"0.7"`
	LandscapeScale   float64 `json:"landscape_scale"    env:"PHOTOFRAMER_LANDSCAPE_SCALE"   envDefault:"0.8"`
	Quality          int     `json:"quality"            env:"PHOTOFRAMER_QUALITY"           envDefault:"95"`
	OutputFormat     string  `json:"output_format"      env:"PHOTOFRAMER_FORMAT"            envDefault:"png"`
	PortraitOffsetY  float64 `json:"portrait_offset_y"  env:"PHOTOFRAMER_PORTRAIT_OFFSET"   envDefault:"0"`
	LandscapeOffsetY float64 `json:"landscape_offset_y" env:"PHOTOFRAMER_LANDSCAPE_OFFSET"  envDefault:"0"`
	RemoveBackground bool    `json:"remove_background"  env:"PHOTOFRAMER_REMOVE_BACKGROUND" envDefault:"false"`
	LogLevel         string  `json:"log_level"          env:"PHOTOFRAMER_LOG_LEVEL"         envDefault:"info"`
}

// Default returns a configuration with the stock defaults and no environment
// overlay.
func Default() *Config {
	cfg := &Config{}
	// An empty environment leaves only the envDefault values in place.
	_ = env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// Load builds the configuration from the defaults plus any PHOTOFRAMER_*
// environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON file. Keys missing from the
// file keep their defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the numeric ranges and the output format. Path existence
// is checked by the engine when a run starts, so a config file can be edited
// before its paths exist.
func (c *Config) Validate() error {
	if c.MarginPercent < 0 || c.MarginPercent > 50 {
		return fmt.Errorf("margin_percent must be between 0 and 50")
	}

	if c.PortraitScale <= 0 || c.PortraitScale > 1 {
		return fmt.Errorf("portrait_scale must be between 0 and 1")
	}

	if c.LandscapeScale <= 0 || c.LandscapeScale > 1 {
		return fmt.Errorf("landscape_scale must be between 0 and 1")
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100")
	}

	switch strings.ToLower(c.OutputFormat) {
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("output_format must be png, jpg or jpeg")
	}

	return nil
}

// Framer converts the application configuration into the engine's Config.
func (c *Config) Framer() framer.Config {
	return framer.Config{
		FramePath:        c.FramePath,
		InputDir:         c.InputDir,
		OutputDir:        c.OutputDir,
		MarginPercent:    c.MarginPercent,
		PortraitScale:    c.PortraitScale,
		LandscapeScale:   c.LandscapeScale,
		Quality:          c.Quality,
		OutputFormat:     c.OutputFormat,
		PortraitOffsetY:  c.PortraitOffsetY,
		LandscapeOffsetY: c.LandscapeOffsetY,
		RemoveBackground: c.RemoveBackground,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "photo-framer", "config.json")
}
