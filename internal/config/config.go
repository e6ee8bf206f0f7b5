// Package config handles loading application configuration from a YAML
// file, an optional .env file and QRSTYLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/qrstyle/internal/qr"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "QRSTYLE_"

// Config holds all application configuration values.
type Config struct {
	Port          int    `yaml:"port" env:"PORT"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	MaxTextLength int    `yaml:"max_text_length" env:"MAX_TEXT_LENGTH"`
	MaxPixels     int    `yaml:"max_pixels" env:"MAX_PIXELS"` // largest canvas area the HTTP API renders
	Encoder       string `yaml:"encoder" env:"ENCODER"`
	FontPath      string `yaml:"font_path" env:"FONT_PATH"`
	LogoDir       string `yaml:"logo_dir" env:"LOGO_DIR"` // logos the HTTP API may overlay; empty disables logos

	Render RenderDefaults `yaml:"render" envPrefix:"RENDER_"`
}

// RenderDefaults are the option values used when a request leaves them out.
type RenderDefaults struct {
	Size       int     `yaml:"size" env:"SIZE"`
	Border     int     `yaml:"border" env:"BORDER"`
	Level      string  `yaml:"ec" env:"EC"`
	Style      string  `yaml:"style" env:"STYLE"`
	Radius     float64 `yaml:"radius" env:"RADIUS"`
	Foreground string  `yaml:"fg" env:"FG"`
	Background string  `yaml:"bg" env:"BG"`
	Gradient   string  `yaml:"gradient" env:"GRADIENT"`
	Gradient2  string  `yaml:"fg2" env:"FG2"`
	Padding    int     `yaml:"padding" env:"PADDING"`
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		Port:          8080,
		LogLevel:      "info",
		MaxTextLength: 2048,
		MaxPixels:     4096 * 4096,
		Encoder:       "yeqown",
		Render: RenderDefaults{
			Size:       1024,
			Border:     qr.DefaultBorder,
			Level:      "M",
			Style:      "squares",
			Radius:     0.3,
			Foreground: "black",
			Background: "white",
			Gradient:   "none",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

// Load reads configuration from the YAML file at path and from .env in the
// working directory, then applies QRSTYLE_* variables from the process
// environment. Missing files are not an error.
func Load(path string) (*Config, error) {
	return LoadFrom(path, ".env", os.Environ())
}

// LoadFrom is Load with an explicit env file and environment. Variables in
// environ take precedence over the env file, which takes precedence over
// the YAML file.
func LoadFrom(path, envFile string, environ []string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// File doesn't exist, proceed with defaults.
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for k, v := range env.ToMap(environ) {
		vars[k] = v
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix, Environment: vars}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value can be turned into renderer options.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("max_text_length must be positive, got %d", c.MaxTextLength)
	}
	if c.MaxPixels <= 0 || c.MaxPixels > qr.MaxCanvasPixels {
		return fmt.Errorf("max_pixels must be in 1..%d, got %d", qr.MaxCanvasPixels, c.MaxPixels)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.MatrixOptions(); err != nil {
		return fmt.Errorf("render defaults: %w", err)
	}
	ro, err := c.Render.RenderOptions()
	if err != nil {
		return fmt.Errorf("render defaults: %w", err)
	}
	if err := ro.Validate(); err != nil {
		return fmt.Errorf("render defaults: %w", err)
	}
	return nil
}

// MatrixOptions converts the defaults into grid options.
func (c *Config) MatrixOptions() (qr.MatrixOptions, error) {
	opts := qr.DefaultMatrixOptions()
	level, err := qr.ParseLevel(c.Render.Level)
	if err != nil {
		return opts, err
	}
	enc, err := qr.EncoderByName(c.Encoder)
	if err != nil {
		return opts, err
	}
	if c.Render.Border < 0 || c.Render.Border > qr.MaxBorder {
		return opts, fmt.Errorf("%w: border must be in 0..%d, got %d", qr.ErrInvalidOption, qr.MaxBorder, c.Render.Border)
	}
	opts.Level = level
	opts.Border = c.Render.Border
	opts.Encoder = enc
	return opts, nil
}

// RenderOptions converts the defaults into renderer options.
func (r RenderDefaults) RenderOptions() (qr.RenderOptions, error) {
	opts := qr.DefaultRenderOptions()

	style, err := qr.ParseStyle(r.Style)
	if err != nil {
		return opts, err
	}
	gradient, err := qr.ParseGradient(r.Gradient)
	if err != nil {
		return opts, err
	}
	fg, err := qr.ParseColor(r.Foreground)
	if err != nil {
		return opts, err
	}
	bg, err := qr.ParseColor(r.Background)
	if err != nil {
		return opts, err
	}
	fg2, err := qr.ParseOptionalColor(r.Gradient2)
	if err != nil {
		return opts, err
	}

	opts.Size = r.Size
	opts.Style = style
	opts.Radius = r.Radius
	opts.Foreground = fg
	opts.Background = bg
	opts.Gradient = gradient
	opts.Gradient2 = fg2
	opts.Padding = r.Padding
	return opts, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}
