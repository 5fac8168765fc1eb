package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2png/internal/config"
)

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// runFlags holds all flags for the default (conversion) command.
type runFlags struct {
	common  commonFlags
	input   string
	html    string
	output  string
	engine  string
	binary  string
	width   int
	height  int
	settle  string
	timeout string
	noOpen  bool
	help    bool

	// changed reports whether a flag was set explicitly.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostic logging")
}

// parseRunFlags parses conversion flags. A single positional argument is
// accepted as the Markdown input.
func parseRunFlags(args []string) (*runFlags, error) {
	f := &runFlags{}
	fs := flag.NewFlagSet("md2png", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.input, "input", "i", config.DefaultInputPath, "Markdown source")
	fs.StringVar(&f.html, "html", config.DefaultHTMLPath, "intermediate HTML path")
	fs.StringVarP(&f.output, "output", "o", config.DefaultPNGPath, "PNG output path")
	fs.StringVar(&f.engine, "engine", config.EnginePandoc, "converter: pandoc, goldmark, auto")
	fs.StringVar(&f.binary, "pandoc", "", "pandoc executable")
	fs.IntVar(&f.width, "width", config.DefaultWidth, "viewport width in pixels")
	fs.IntVar(&f.height, "height", config.DefaultHeight, "viewport height in pixels")
	fs.StringVar(&f.settle, "settle", config.DefaultSettle, "wait after page load")
	fs.StringVarP(&f.timeout, "timeout", "t", config.DefaultTimeout, "page load limit (0 = none)")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the results")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		if fs.Changed("input") {
			return nil, fmt.Errorf("%w: input given both as argument and --input", ErrUsage)
		}
		f.input = rest[0]
		if err := fs.Set("input", rest[0]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
	default:
		return nil, fmt.Errorf("%w: expected at most one input, got %d", ErrUsage, len(rest))
	}

	f.changed = fs.Changed
	return f, nil
}

// mergeFlags applies explicitly set flags on top of cfg (CLI wins).
func mergeFlags(f *runFlags, cfg *config.Config) {
	changed := f.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if changed("input") {
		cfg.Input.Path = f.input
	}
	if changed("html") {
		cfg.Output.HTML = f.html
	}
	if changed("output") {
		cfg.Output.PNG = f.output
	}
	if changed("engine") {
		cfg.Converter.Engine = f.engine
	}
	if changed("pandoc") {
		cfg.Converter.Binary = f.binary
	}
	if changed("width") {
		cfg.Capture.Width = f.width
	}
	if changed("height") {
		cfg.Capture.Height = f.height
	}
	if changed("settle") {
		cfg.Capture.Settle = f.settle
	}
	if changed("timeout") {
		cfg.Capture.Timeout = f.timeout
	}
	if f.noOpen {
		cfg.Open.Enabled = false
	}
}
