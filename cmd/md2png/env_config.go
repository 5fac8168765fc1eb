package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2png/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2PNG_CONFIG: config file name or path
	Input      string // MD2PNG_INPUT: Markdown source
	HTML       string // MD2PNG_HTML: intermediate HTML path
	Output     string // MD2PNG_OUTPUT: PNG path
	Engine     string // MD2PNG_ENGINE: pandoc, goldmark, auto
	Timeout    string // MD2PNG_TIMEOUT: navigation limit (Go duration)
	Settle     string // MD2PNG_SETTLE: settle delay (Go duration)
	NoOpen     bool   // MD2PNG_NO_OPEN: skip opening artifacts
}

// knownEnvVars lists valid MD2PNG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PNG_CONFIG":  true,
	"MD2PNG_INPUT":   true,
	"MD2PNG_HTML":    true,
	"MD2PNG_OUTPUT":  true,
	"MD2PNG_ENGINE":  true,
	"MD2PNG_TIMEOUT": true,
	"MD2PNG_SETTLE":  true,
	"MD2PNG_NO_OPEN": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2PNG_CONFIG"),
		Input:      os.Getenv("MD2PNG_INPUT"),
		HTML:       os.Getenv("MD2PNG_HTML"),
		Output:     os.Getenv("MD2PNG_OUTPUT"),
		Engine:     os.Getenv("MD2PNG_ENGINE"),
		Timeout:    os.Getenv("MD2PNG_TIMEOUT"),
		Settle:     os.Getenv("MD2PNG_SETTLE"),
	}

	// Unparsable booleans are ignored
	if v := os.Getenv("MD2PNG_NO_OPEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoOpen = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2PNG_* variables.
// Helps catch typos like MD2PNG_OUPUT instead of MD2PNG_OUTPUT.
func warnUnknownEnvVars(log logrus.FieldLogger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2PNG_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				log.WithField("variable", name).Warn("unknown environment variable (typo?)")
			}
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		cfg.Input.Path = env.Input
	}
	if env.HTML != "" {
		cfg.Output.HTML = env.HTML
	}
	if env.Output != "" {
		cfg.Output.PNG = env.Output
	}
	if env.Engine != "" {
		cfg.Converter.Engine = env.Engine
	}
	if env.Timeout != "" {
		cfg.Capture.Timeout = env.Timeout
	}
	if env.Settle != "" {
		cfg.Capture.Settle = env.Settle
	}
	if env.NoOpen {
		cfg.Open.Enabled = false
	}
}
