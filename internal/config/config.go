// Package config loads and validates md2png configuration files.
//
// A configuration file is optional: DefaultConfig reproduces the fixed
// behavior (ARCHITECTURE.md -> ARCHITECTURE.html -> ARCHITECTURE.png,
// 1400x1080 viewport, 1s settle delay).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2png/internal/fileutil"
	"github.com/alnah/go-md2png/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Engine names accepted by converter.engine.
const (
	EnginePandoc   = "pandoc"
	EngineGoldmark = "goldmark"
	EngineAuto     = "auto"
)

// Default values, mirrored by the md2png package constants.
const (
	DefaultInputPath = "ARCHITECTURE.md"
	DefaultHTMLPath  = "ARCHITECTURE.html"
	DefaultPNGPath   = "ARCHITECTURE.png"
	DefaultWidth     = 1400
	DefaultHeight    = 1080
	DefaultSettle    = "1s"
	DefaultTimeout   = "60s"
)

// Bounds enforced by Validate.
const (
	MinDimension   = 100
	MaxDimension   = 10000
	MaxSettleDelay = time.Minute
)

// Config holds all configuration for a pipeline run.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Converter ConverterConfig `yaml:"converter"`
	Capture   CaptureConfig   `yaml:"capture"`
	Open      OpenConfig      `yaml:"open"`
}

// InputConfig defines the Markdown source.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	HTML string `yaml:"html"`
	PNG  string `yaml:"png"`
}

// ConverterConfig selects the Markdown to HTML engine.
type ConverterConfig struct {
	Engine string `yaml:"engine"` // "pandoc", "goldmark", "auto"
	Binary string `yaml:"binary"` // pandoc executable (empty = look up "pandoc" on PATH)
}

// CaptureConfig defines browser viewport and timing.
type CaptureConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Settle  string `yaml:"settle"`  // Go duration, e.g. "1s", "1500ms"
	Timeout string `yaml:"timeout"` // navigation limit, "0" disables
}

// OpenConfig controls opening artifacts in the default viewer.
type OpenConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:     InputConfig{Path: DefaultInputPath},
		Output:    OutputConfig{HTML: DefaultHTMLPath, PNG: DefaultPNGPath},
		Converter: ConverterConfig{Engine: EnginePandoc},
		Capture: CaptureConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Settle:  DefaultSettle,
			Timeout: DefaultTimeout,
		},
		Open: OpenConfig{Enabled: true},
	}
}

// SettleDelay parses Capture.Settle.
func (c *Config) SettleDelay() (time.Duration, error) {
	return parseDuration("capture.settle", c.Capture.Settle)
}

// NavigationTimeout parses Capture.Timeout. Zero means unbounded.
func (c *Config) NavigationTimeout() (time.Duration, error) {
	return parseDuration("capture.timeout", c.Capture.Timeout)
}

// Validate checks every field; LoadConfig calls it after parsing.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return fmt.Errorf("%w: input.path is required", ErrInvalidValue)
	}
	if strings.TrimSpace(c.Output.HTML) == "" {
		return fmt.Errorf("%w: output.html is required", ErrInvalidValue)
	}
	if strings.TrimSpace(c.Output.PNG) == "" {
		return fmt.Errorf("%w: output.png is required", ErrInvalidValue)
	}
	if samePath(c.Output.HTML, c.Output.PNG) {
		return fmt.Errorf("%w: output.html and output.png must differ", ErrInvalidValue)
	}
	if samePath(c.Input.Path, c.Output.HTML) {
		return fmt.Errorf("%w: output.html would overwrite input.path", ErrInvalidValue)
	}
	if samePath(c.Input.Path, c.Output.PNG) {
		return fmt.Errorf("%w: output.png would overwrite input.path", ErrInvalidValue)
	}

	switch strings.ToLower(c.Converter.Engine) {
	case EnginePandoc, EngineGoldmark, EngineAuto:
	default:
		return fmt.Errorf("%w: converter.engine %q (must be pandoc, goldmark, or auto)", ErrInvalidValue, c.Converter.Engine)
	}

	if err := validateDimension("capture.width", c.Capture.Width); err != nil {
		return err
	}
	if err := validateDimension("capture.height", c.Capture.Height); err != nil {
		return err
	}

	settle, err := c.SettleDelay()
	if err != nil {
		return err
	}
	if settle > MaxSettleDelay {
		return fmt.Errorf("%w: capture.settle %s exceeds %s", ErrInvalidValue, settle, MaxSettleDelay)
	}

	if _, err := c.NavigationTimeout(); err != nil {
		return err
	}

	return nil
}

func validateDimension(field string, v int) error {
	if v < MinDimension || v > MaxDimension {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, field, MinDimension, MaxDimension, v)
	}
	return nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidValue, field, s)
	}
	return d, nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// LoadConfig loads configuration from a file path or config name.
// Names are searched with SearchPaths; paths are read directly.
// Values absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// the current directory, then the user config directory (go-md2png/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "go-md2png", name+ext))
		}
	}

	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
