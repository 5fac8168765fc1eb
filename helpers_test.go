package md2png

// Notes:
// - Shared mocks for the root package tests: a converter that writes canned
//   HTML and a page capturer that returns an in-memory PNG
// - Internal test options (withConverter, withPageCapturer, withStyle)
//   inject them through NewPipeline

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2png/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

const standaloneHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ARCHITECTURE</title>
</head>
<body>
<h1 id="title">Title</h1>
<p>Some <em>text</em>.</p>
</body>
</html>
`

type mockConverter struct {
	output string
	err    error
	panic  bool
	calls  int
}

func (m *mockConverter) Name() string { return "mock" }

func (m *mockConverter) Convert(_ context.Context, _, htmlPath string) error {
	m.calls++
	if m.panic {
		panic("converter exploded")
	}
	if m.err != nil {
		return m.err
	}
	out := m.output
	if out == "" {
		out = standaloneHTML
	}
	return os.WriteFile(htmlPath, []byte(out), 0o600)
}

type mockPageCapturer struct {
	data   []byte
	err    error
	calls  int
	closed int
	gotURL string
	gotOpt captureOptions
}

func (m *mockPageCapturer) CapturePage(_ context.Context, url string, opts captureOptions) ([]byte, error) {
	m.calls++
	m.gotURL = url
	m.gotOpt = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func (m *mockPageCapturer) Close() error {
	m.closed++
	return nil
}

// ---------------------------------------------------------------------------
// Internal Test Options
// ---------------------------------------------------------------------------

func withConverter(c pipeline.DocumentConverter) Option {
	return func(p *Pipeline) {
		p.converter = c
	}
}

func withPageCapturer(c pageCapturer) Option {
	return func(p *Pipeline) {
		p.capturer = c
	}
}

func withStyle(css string) Option {
	return func(p *Pipeline) {
		p.style = css
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// encodePNG returns a blank PNG of the given size.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

// testJob writes markdown to a temp dir and returns a job rooted there.
func testJob(t *testing.T, markdown string) Job {
	t.Helper()

	dir := t.TempDir()
	job := Job{
		SourcePath: filepath.Join(dir, DefaultSourcePath),
		HTMLPath:   filepath.Join(dir, DefaultHTMLPath),
		PNGPath:    filepath.Join(dir, DefaultPNGPath),
	}
	if err := os.WriteFile(job.SourcePath, []byte(markdown), 0o600); err != nil {
		t.Fatal(err)
	}
	return job
}
