package md2png

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2png/internal/pipeline"
)

// Fixed file names used when no job is given.
const (
	DefaultSourcePath = "ARCHITECTURE.md"
	DefaultHTMLPath   = "ARCHITECTURE.html"
	DefaultPNGPath    = "ARCHITECTURE.png"
)

// Capture defaults.
const (
	DefaultWidth       = 1400
	DefaultHeight      = 1080
	DefaultSettleDelay = 1000 * time.Millisecond
	DefaultTimeout     = 60 * time.Second
)

// Viewport bounds in CSS pixels.
const (
	MinViewportDimension = 100
	MaxViewportDimension = 10000
	MaxSettleDelay       = time.Minute
)

// Engine names accepted by WithEngine.
const (
	EnginePandoc   = pipeline.EnginePandoc
	EngineGoldmark = pipeline.EngineGoldmark
	EngineAuto     = pipeline.EngineAuto
)

// Job names the three files of one run.
type Job struct {
	SourcePath string // Markdown input
	HTMLPath   string // intermediate HTML, overwritten
	PNGPath    string // final screenshot, overwritten
}

// DefaultJob returns the job for ARCHITECTURE.md in the working directory.
func DefaultJob() Job {
	return Job{
		SourcePath: DefaultSourcePath,
		HTMLPath:   DefaultHTMLPath,
		PNGPath:    DefaultPNGPath,
	}
}

// Viewport is the browser window size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport returns the 1400x1080 viewport.
func DefaultViewport() Viewport {
	return Viewport{Width: DefaultWidth, Height: DefaultHeight}
}

// Validate checks that both dimensions are within bounds.
func (v Viewport) Validate() error {
	if v.Width < MinViewportDimension || v.Width > MaxViewportDimension {
		return fmt.Errorf("%w: width %d (must be between %d and %d)", ErrInvalidViewport, v.Width, MinViewportDimension, MaxViewportDimension)
	}
	if v.Height < MinViewportDimension || v.Height > MaxViewportDimension {
		return fmt.Errorf("%w: height %d (must be between %d and %d)", ErrInvalidViewport, v.Height, MinViewportDimension, MaxViewportDimension)
	}
	return nil
}

// RenderResult describes the HTML written by the Render stage.
type RenderResult struct {
	HTMLPath      string
	StyleInjected bool   // false when the document had no </head>
	Title         string // document title, empty if none
	Bytes         int
	Engine        string // converter that produced the HTML
}

// CaptureResult describes the PNG written by the Capture stage.
type CaptureResult struct {
	PNGPath string
	Bytes   int
	Width   int // pixel dimensions read back from the PNG header
	Height  int
}

// Result contains the outcome of a full pipeline run.
type Result struct {
	Render   *RenderResult
	Capture  *CaptureResult
	Duration time.Duration
}

// CommandRunner runs external commands such as pandoc.
type CommandRunner = pipeline.CommandRunner

// Option configures a Pipeline.
type Option func(*Pipeline)

// pipelineConfig holds internal configuration for Pipeline.
type pipelineConfig struct {
	engine       string
	pandocBinary string
	viewport     Viewport
	settleDelay  time.Duration
	timeout      time.Duration
	runner       CommandRunner
}

func defaultPipelineConfig() pipelineConfig {
	return pipelineConfig{
		engine:      EnginePandoc,
		viewport:    DefaultViewport(),
		settleDelay: DefaultSettleDelay,
		timeout:     DefaultTimeout,
	}
}

// WithEngine selects the Markdown converter: "pandoc", "goldmark" or "auto".
// Unknown names are reported by NewPipeline.
func WithEngine(name string) Option {
	return func(p *Pipeline) {
		p.cfg.engine = name
	}
}

// WithPandocBinary sets the pandoc executable (name on PATH or absolute path).
func WithPandocBinary(path string) Option {
	return func(p *Pipeline) {
		p.cfg.pandocBinary = path
	}
}

// WithViewport sets the browser viewport. NewPipeline validates it.
func WithViewport(v Viewport) Option {
	return func(p *Pipeline) {
		p.cfg.viewport = v
	}
}

// WithSettleDelay sets the wait between page load and screenshot.
// NewPipeline rejects negative values and values above MaxSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.cfg.settleDelay = d
	}
}

// WithTimeout bounds page navigation. Zero disables the limit.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("md2png: WithTimeout duration must not be negative")
	}
	return func(p *Pipeline) {
		p.cfg.timeout = d
	}
}

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCommandRunner replaces the runner used to invoke pandoc.
func WithCommandRunner(r CommandRunner) Option {
	return func(p *Pipeline) {
		p.cfg.runner = r
	}
}

// discardLogger returns a logrus logger that writes nowhere.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
