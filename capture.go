package md2png

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2png/internal/fileutil"
	"github.com/alnah/go-md2png/internal/process"
)

// pageCapturer abstracts screenshot capture to enable testing without a browser.
type pageCapturer interface {
	CapturePage(ctx context.Context, url string, opts captureOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ pageCapturer = (*rodCapturer)(nil)

// captureOptions holds per-capture browser settings.
type captureOptions struct {
	Viewport    Viewport
	SettleDelay time.Duration
	Timeout     time.Duration // navigation limit, 0 = none
}

// Capturer renders an HTML file in headless Chrome and saves a PNG.
type Capturer struct {
	page   pageCapturer
	opts   captureOptions
	logger logrus.FieldLogger
}

// Capture loads htmlPath through a file:// URL and writes a PNG of the whole
// scrollable page to pngPath, overwriting it.
func (c *Capturer) Capture(ctx context.Context, htmlPath, pngPath string) (*CaptureResult, error) {
	if htmlPath == "" || pngPath == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url, err := fileutil.FileURL(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	log := c.logger.WithFields(logrus.Fields{"url": url, "png": pngPath})
	log.WithFields(logrus.Fields{
		"width":  c.opts.Viewport.Width,
		"height": c.opts.Viewport.Height,
		"settle": c.opts.SettleDelay,
	}).Debug("capturing page")

	data, err := c.page.CapturePage(ctx, url, c.opts)
	if err != nil {
		return nil, err
	}

	if err := fileutil.WriteFile(pngPath, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWritePNG, err)
	}

	res := &CaptureResult{PNGPath: pngPath, Bytes: len(data)}
	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
		res.Width, res.Height = cfg.Width, cfg.Height
	} else {
		log.WithError(err).Warn("could not read PNG dimensions")
	}

	log.WithFields(logrus.Fields{"bytes": res.Bytes, "pixels": fmt.Sprintf("%dx%d", res.Width, res.Height)}).Debug("png written")
	return res, nil
}

// Close releases the browser.
func (c *Capturer) Close() error {
	return c.page.Close()
}

// rodCapturer implements pageCapturer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodCapturer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	pid      int
	logger   logrus.FieldLogger
}

func newRodCapturer(logger logrus.FieldLogger) *rodCapturer {
	return &rodCapturer{logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodCapturer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true)

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.pid = l.PID()
	r.logger.WithFields(logrus.Fields{"pid": r.pid, "url": u}).Debug("browser launched")

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = b
	return nil
}

// noSandbox reports whether Chrome must run without its sandbox
// (CI, containers, pre-installed browsers).
func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// CapturePage opens url in a fresh page and returns a PNG covering the
// full scrollable height, never shorter than the viewport.
func (r *rodCapturer) CapturePage(ctx context.Context, url string, opts captureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()
	p := page.Context(ctx)

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Viewport.Width,
		Height:            opts.Viewport.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	nav := p
	if opts.Timeout > 0 {
		nav = p.Timeout(opts.Timeout)
		defer nav.CancelTimeout()
	}
	if err := nav.Navigate(url); err != nil {
		return nil, r.loadError(ctx, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, r.loadError(ctx, err)
	}

	if err := settle(ctx, opts.SettleDelay); err != nil {
		return nil, err
	}

	metrics, err := proto.PageGetLayoutMetrics{}.Call(p)
	if err != nil {
		return nil, fmt.Errorf("%w: measuring page: %v", ErrScreenshot, err)
	}
	height := opts.Viewport.Height
	if metrics.CSSContentSize != nil {
		height = clipHeight(metrics.CSSContentSize.Height, opts.Viewport.Height)
	}

	data, err := p.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(opts.Viewport.Width),
			Height: float64(height),
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	return data, nil
}

func (r *rodCapturer) loadError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrPageLoad, err)
}

// clipHeight rounds the content height up and clamps it to the viewport.
func clipHeight(content float64, viewport int) int {
	h := int(math.Ceil(content))
	if h < viewport {
		return viewport
	}
	return h
}

// settle waits d, returning early with ctx's error if ctx is done first.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close releases browser resources: the CDP connection, the launcher and
// the Chrome process group. Safe to call more than once.
func (r *rodCapturer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodCapturer) killLauncher() {
	if r.launcher == nil {
		return
	}
	r.launcher.Kill()
	process.KillProcessGroup(r.pid)
	r.launcher.Cleanup()
	r.logger.WithField("pid", r.pid).Debug("browser released")
	r.launcher = nil
	r.pid = 0
}
