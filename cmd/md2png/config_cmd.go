package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2png/internal/yamlutil"
)

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) int {
	f := &runFlags{}
	fs := flag.NewFlagSet("md2png config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v: %v\n", ErrUsage, err)
		return ExitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(env.Stderr, "error: %v: unexpected argument %q\n", ErrUsage, fs.Arg(0))
		return ExitUsage
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, configHint(err, f))
		return exitCodeFor(err)
	}

	data, err := yamlutil.Encode(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitGeneral
	}
	_, _ = env.Stdout.Write(data)
	return ExitSuccess
}
