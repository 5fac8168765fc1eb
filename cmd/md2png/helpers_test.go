package main

// Notes:
// - Test doubles for the Runner and Opener used through Environment.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"sync"
	"time"

	md2png "github.com/alnah/go-md2png"
)

// ---------------------------------------------------------------------------
// fakeRunner - Records stage calls and returns canned results
// ---------------------------------------------------------------------------

type fakeRunner struct {
	renderErr  error
	captureErr error
	width      int
	height     int

	calls  []string
	closed bool
}

func (f *fakeRunner) Render(_ context.Context, src, html string) (*md2png.RenderResult, error) {
	f.calls = append(f.calls, "render "+src+" "+html)
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return &md2png.RenderResult{HTMLPath: html, StyleInjected: true, Title: "Architecture", Engine: "pandoc"}, nil
}

func (f *fakeRunner) Capture(_ context.Context, html, png string) (*md2png.CaptureResult, error) {
	f.calls = append(f.calls, "capture "+html+" "+png)
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return &md2png.CaptureResult{PNGPath: png, Bytes: 42, Width: f.width, Height: f.height}, nil
}

func (f *fakeRunner) Close() error {
	f.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// fakeOpener - Records opened paths
// ---------------------------------------------------------------------------

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *fakeOpener) Open(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return o.err
}

// ---------------------------------------------------------------------------
// testEnv - Environment wired to fakes
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *fakeRunner
	opener *fakeOpener
	opts   []md2png.Option
}

func newTestEnv(runner *fakeRunner) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		runner: runner,
		opener: &fakeOpener{},
	}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	te.Environment = &Environment{
		Now: func() time.Time {
			clock = clock.Add(750 * time.Millisecond)
			return clock
		},
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPipeline: func(opts ...md2png.Option) (Runner, error) {
			te.opts = opts
			return te.runner, nil
		},
		Opener: te.opener,
	}
	return te
}
