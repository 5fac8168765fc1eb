package main

import (
	"context"
	"io"
	"os"
	"time"

	md2png "github.com/alnah/go-md2png"
)

// Runner is the subset of *md2png.Pipeline used by the CLI.
type Runner interface {
	Render(ctx context.Context, sourcePath, htmlPath string) (*md2png.RenderResult, error)
	Capture(ctx context.Context, htmlPath, pngPath string) (*md2png.CaptureResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Runner = (*md2png.Pipeline)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the pipeline factory and the file opener.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewPipeline func(opts ...md2png.Option) (Runner, error)
	Opener      md2png.Opener
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPipeline: func(opts ...md2png.Option) (Runner, error) {
			return md2png.NewPipeline(opts...)
		},
		Opener: md2png.NewSystemOpener(),
	}
}
