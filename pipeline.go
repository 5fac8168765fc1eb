package md2png

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2png/internal/assets"
	"github.com/alnah/go-md2png/internal/pipeline"
)

// Pipeline owns the Render and Capture stages of one md2png run.
// Create with NewPipeline, use Run (or Render then Capture), and Close when done.
type Pipeline struct {
	cfg       pipelineConfig
	logger    logrus.FieldLogger
	converter pipeline.DocumentConverter
	injector  pipeline.StyleInjector
	style     string
	capturer  pageCapturer

	renderer *Renderer
	capture  *Capturer
}

// NewPipeline creates a Pipeline with default configuration.
// Returns an error when an option value is invalid or the style sheet
// cannot be loaded. The browser is not started until the first capture.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:      defaultPipelineConfig(),
		logger:   discardLogger(),
		injector: &pipeline.StyleInjection{},
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.cfg.viewport.Validate(); err != nil {
		return nil, err
	}
	if p.cfg.settleDelay < 0 || p.cfg.settleDelay > MaxSettleDelay {
		return nil, fmt.Errorf("%w: %s (must be between 0 and %s)", ErrInvalidSettleDelay, p.cfg.settleDelay, MaxSettleDelay)
	}

	// Converter and style sheet may be injected by tests
	if p.converter == nil {
		conv, err := pipeline.NewConverter(p.cfg.engine, p.cfg.pandocBinary, p.cfg.runner)
		if err != nil {
			return nil, err
		}
		p.converter = conv
	}
	if p.style == "" {
		css, err := assets.DefaultStyle()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStyleLoad, err)
		}
		p.style = css
	}
	if p.capturer == nil {
		p.capturer = newRodCapturer(p.logger)
	}

	p.renderer = &Renderer{
		converter: p.converter,
		injector:  p.injector,
		css:       p.style,
		logger:    p.logger,
	}
	p.capture = &Capturer{
		page: p.capturer,
		opts: captureOptions{
			Viewport:    p.cfg.viewport,
			SettleDelay: p.cfg.settleDelay,
			Timeout:     p.cfg.timeout,
		},
		logger: p.logger,
	}

	return p, nil
}

// Engine returns the name of the selected converter.
func (p *Pipeline) Engine() string {
	return p.converter.Name()
}

// Render runs the first stage only.
func (p *Pipeline) Render(ctx context.Context, sourcePath, htmlPath string) (*RenderResult, error) {
	return p.renderer.Render(ctx, sourcePath, htmlPath)
}

// Capture runs the second stage only.
func (p *Pipeline) Capture(ctx context.Context, htmlPath, pngPath string) (*CaptureResult, error) {
	return p.capture.Capture(ctx, htmlPath, pngPath)
}

// Run renders job.SourcePath to job.HTMLPath, then captures job.PNGPath.
// Capture is skipped entirely when rendering fails.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Pipeline) Run(ctx context.Context, job Job) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	rendered, err := p.Render(ctx, job.SourcePath, job.HTMLPath)
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	captured, err := p.Capture(ctx, job.HTMLPath, job.PNGPath)
	if err != nil {
		return nil, fmt.Errorf("capturing PNG: %w", err)
	}

	return &Result{
		Render:   rendered,
		Capture:  captured,
		Duration: time.Since(start),
	}, nil
}

// Close releases resources (headless Chrome browser).
func (p *Pipeline) Close() error {
	if p.capture != nil {
		return p.capture.Close()
	}
	return nil
}
