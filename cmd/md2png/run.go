package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	md2png "github.com/alnah/go-md2png"
	"github.com/alnah/go-md2png/internal/config"
	"github.com/alnah/go-md2png/internal/hints"
)

// runMain dispatches the command line and returns the process exit code.
// args includes the program name, as in os.Args.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	if len(args) > 0 {
		switch args[0] {
		case "doctor":
			return runDoctorCmd(args[1:], env)
		case "config":
			return runConfigCmd(args[1:], env)
		case "version", "--version":
			fmt.Fprintf(env.Stdout, "md2png %s\n", Version)
			return ExitSuccess
		case "help":
			runHelp(args[1:], env)
			return ExitSuccess
		}
	}

	flags, err := parseRunFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(log)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cfg, err := resolveConfig(flags)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, configHint(err, flags))
		return exitCodeFor(err)
	}

	if err := runConvert(ctx, cfg, flags.common.quiet, env, log); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > MD2PNG_* env vars > config file > defaults.
func resolveConfig(flags *runFlags) (*config.Config, error) {
	envCfg := loadEnvConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pipelineOptions translates a validated config into pipeline options.
func pipelineOptions(cfg *config.Config, log logrus.FieldLogger) ([]md2png.Option, error) {
	settle, err := cfg.SettleDelay()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.NavigationTimeout()
	if err != nil {
		return nil, err
	}

	opts := []md2png.Option{
		md2png.WithEngine(cfg.Converter.Engine),
		md2png.WithViewport(md2png.Viewport{Width: cfg.Capture.Width, Height: cfg.Capture.Height}),
		md2png.WithSettleDelay(settle),
		md2png.WithTimeout(timeout),
		md2png.WithLogger(log),
	}
	if cfg.Converter.Binary != "" {
		opts = append(opts, md2png.WithPandocBinary(cfg.Converter.Binary))
	}
	return opts, nil
}

// runConvert renders cfg.Input.Path to HTML, captures the PNG, prints
// progress, and opens both artifacts when enabled.
func runConvert(ctx context.Context, cfg *config.Config, quiet bool, env *Environment, log logrus.FieldLogger) error {
	out := env.Stdout
	if quiet {
		out = io.Discard
	}
	start := env.Now()

	opts, err := pipelineOptions(cfg, log)
	if err != nil {
		return err
	}
	p, err := env.NewPipeline(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			log.WithError(cerr).Debug("closing browser")
		}
	}()

	src, htmlPath, pngPath := cfg.Input.Path, cfg.Output.HTML, cfg.Output.PNG

	fmt.Fprintf(out, "Converting %s -> %s\n", src, htmlPath)
	rendered, err := p.Render(ctx, src, htmlPath)
	if err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", htmlPath)

	fmt.Fprintf(out, "Capturing %s -> %s\n", htmlPath, pngPath)
	captured, err := p.Capture(ctx, htmlPath, pngPath)
	if err != nil {
		return fmt.Errorf("capturing PNG: %w", err)
	}
	fmt.Fprintf(out, "Created %s (%dx%d)\n", pngPath, captured.Width, captured.Height)

	elapsed := env.Now().Sub(start).Round(time.Millisecond)
	log.WithFields(logrus.Fields{
		"title":  rendered.Title,
		"engine": rendered.Engine,
		"styled": rendered.StyleInjected,
	}).Debug("rendered")

	fmt.Fprintln(out)
	fmt.Fprintf(out, "HTML: %s\n", absPath(htmlPath))
	fmt.Fprintf(out, "PNG:  %s\n", absPath(pngPath))
	fmt.Fprintf(out, "Done in %s\n", elapsed)

	if cfg.Open.Enabled && env.Opener != nil {
		for _, path := range []string{htmlPath, pngPath} {
			if err := env.Opener.Open(path); err != nil {
				log.WithError(err).Debug("could not open result")
			}
		}
	}

	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, md2png.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2png.ErrPageLoad):
		return hints.ForPageLoad()
	case errors.Is(err, md2png.ErrConverterNotFound):
		return hints.ForConverterNotFound(cfg.Converter.Binary)
	case errors.Is(err, md2png.ErrSourceNotFound):
		return hints.ForSourceNotFound(cfg.Input.Path)
	case errors.Is(err, md2png.ErrWriteHTML), errors.Is(err, md2png.ErrWritePNG):
		return hints.ForOutputPath()
	}
	return ""
}

// configHint returns a hint for config loading errors.
func configHint(err error, flags *runFlags) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	name := flags.common.config
	if name == "" {
		name = loadEnvConfig().ConfigPath
	}
	return hints.ForConfigNotFound(config.SearchPaths(name))
}
