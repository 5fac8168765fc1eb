package md2png

// Notes:
// - Capturer is tested with mockPageCapturer; rodCapturer is covered by the
//   integration tests (build tag "integration")
// - noSandbox reads process environment, so its test is not parallel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestCapturer(page pageCapturer) *Capturer {
	return &Capturer{
		page: page,
		opts: captureOptions{
			Viewport:    DefaultViewport(),
			SettleDelay: DefaultSettleDelay,
			Timeout:     DefaultTimeout,
		},
		logger: discardLogger(),
	}
}

// ---------------------------------------------------------------------------
// TestCapturer_Capture
// ---------------------------------------------------------------------------

func TestCapturer_Capture(t *testing.T) {
	t.Parallel()

	t.Run("writes png and reads dimensions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		htmlPath := filepath.Join(dir, "ARCHITECTURE.html")
		pngPath := filepath.Join(dir, "ARCHITECTURE.png")
		mock := &mockPageCapturer{data: encodePNG(t, 1400, 2400)}

		res, err := newTestCapturer(mock).Capture(context.Background(), htmlPath, pngPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if res.Width != 1400 || res.Height != 2400 {
			t.Errorf("dimensions = %dx%d, want 1400x2400", res.Width, res.Height)
		}
		data, err := os.ReadFile(pngPath)
		if err != nil {
			t.Fatalf("reading PNG: %v", err)
		}
		if len(data) == 0 || res.Bytes != len(data) {
			t.Errorf("Bytes = %d, file has %d", res.Bytes, len(data))
		}
	})

	t.Run("passes file url and options", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		mock := &mockPageCapturer{data: encodePNG(t, 10, 10)}

		if _, err := newTestCapturer(mock).Capture(context.Background(), filepath.Join(dir, "page.html"), filepath.Join(dir, "page.png")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasPrefix(mock.gotURL, "file://") {
			t.Errorf("url = %q, want file:// scheme", mock.gotURL)
		}
		if !strings.HasSuffix(mock.gotURL, "/page.html") {
			t.Errorf("url = %q, want absolute path to page.html", mock.gotURL)
		}
		if mock.gotOpt.Viewport != DefaultViewport() {
			t.Errorf("viewport = %+v, want default", mock.gotOpt.Viewport)
		}
		if mock.gotOpt.SettleDelay != time.Second {
			t.Errorf("settle = %v, want 1s", mock.gotOpt.SettleDelay)
		}
	})

	t.Run("browser error is returned and nothing written", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pngPath := filepath.Join(dir, "out.png")
		mock := &mockPageCapturer{err: ErrPageLoad}

		_, err := newTestCapturer(mock).Capture(context.Background(), filepath.Join(dir, "in.html"), pngPath)
		if !errors.Is(err, ErrPageLoad) {
			t.Fatalf("error = %v, want ErrPageLoad", err)
		}
		if _, statErr := os.Stat(pngPath); !os.IsNotExist(statErr) {
			t.Errorf("PNG should not exist, stat error = %v", statErr)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		mock := &mockPageCapturer{data: encodePNG(t, 10, 10)}

		_, err := newTestCapturer(mock).Capture(context.Background(), filepath.Join(dir, "in.html"), filepath.Join(blocker, "out.png"))
		if !errors.Is(err, ErrWritePNG) {
			t.Errorf("error = %v, want ErrWritePNG", err)
		}
	})

	t.Run("empty paths", func(t *testing.T) {
		t.Parallel()

		mock := &mockPageCapturer{}
		c := newTestCapturer(mock)

		if _, err := c.Capture(context.Background(), "", "out.png"); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("empty html: error = %v, want ErrEmptyPath", err)
		}
		if _, err := c.Capture(context.Background(), "in.html", ""); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("empty png: error = %v, want ErrEmptyPath", err)
		}
		if mock.calls != 0 {
			t.Errorf("browser called %d times, want 0", mock.calls)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		mock := &mockPageCapturer{}

		_, err := newTestCapturer(mock).Capture(ctx, "in.html", "out.png")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if mock.calls != 0 {
			t.Errorf("browser called %d times, want 0", mock.calls)
		}
	})
}

func TestCapturer_Close(t *testing.T) {
	t.Parallel()

	mock := &mockPageCapturer{}
	if err := newTestCapturer(mock).Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.closed != 1 {
		t.Errorf("Close called %d times, want 1", mock.closed)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestClipHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  float64
		viewport int
		want     int
	}{
		{"short page uses viewport", 300, 1080, 1080},
		{"equal", 1080, 1080, 1080},
		{"tall page", 4321, 1080, 4321},
		{"fraction rounds up", 2000.2, 1080, 2001},
		{"zero content", 0, 1080, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := clipHeight(tt.content, tt.viewport); got != tt.want {
				t.Errorf("clipHeight(%v, %d) = %d, want %d", tt.content, tt.viewport, got, tt.want)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	t.Parallel()

	t.Run("waits the delay", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		if err := settle(context.Background(), 20*time.Millisecond); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("returned after %v, want at least 20ms", elapsed)
		}
	})

	t.Run("zero returns immediately", func(t *testing.T) {
		t.Parallel()

		if err := settle(context.Background(), 0); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("cancel interrupts wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := settle(ctx, time.Minute)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want context.DeadlineExceeded", err)
		}
		if time.Since(start) > 5*time.Second {
			t.Error("settle did not return on cancellation")
		}
	})
}

func TestNoSandbox(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"nothing set", map[string]string{"ROD_NO_SANDBOX": "", "CI": "", "ROD_BROWSER_BIN": ""}, false},
		{"explicit", map[string]string{"ROD_NO_SANDBOX": "1", "CI": "", "ROD_BROWSER_BIN": ""}, true},
		{"ci", map[string]string{"ROD_NO_SANDBOX": "", "CI": "true", "ROD_BROWSER_BIN": ""}, true},
		{"custom browser", map[string]string{"ROD_NO_SANDBOX": "", "CI": "", "ROD_BROWSER_BIN": "/usr/bin/chromium"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := noSandbox(); got != tt.want {
				t.Errorf("noSandbox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRodCapturer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodCapturer(discardLogger())
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unused capturer = %v, want nil", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}
