package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2png/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFile - Creates and overwrites artifacts
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates file with content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.html")
		if err := fileutil.WriteFile(path, []byte("<html></html>")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading back: %v", err)
		}
		if string(got) != "<html></html>" {
			t.Errorf("content = %q, want %q", got, "<html></html>")
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.png")
		if err := os.WriteFile(path, []byte("previous run, longer content"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFile(path, []byte("new")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "out.png")
		if err := fileutil.WriteFile(path, []byte("x")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fileutil.FileExists(path) {
			t.Errorf("expected %s to exist", path)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		err := fileutil.WriteFile("", []byte("x"))
		if !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "ARCHITECTURE.md")
	if err := os.WriteFile(file, []byte("# Title"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"directory", dir, false},
		{"missing file", filepath.Join(dir, "missing.md"), false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Name vs path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"md2png", false},
		{"my-config", false},
		{"./md2png.yaml", true},
		{"/etc/md2png.yaml", true},
		{"C:\\configs\\md2png.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileURL - file:// URL construction
// ---------------------------------------------------------------------------

func TestFileURL(t *testing.T) {
	t.Parallel()

	t.Run("relative path becomes absolute", func(t *testing.T) {
		t.Parallel()

		got, err := fileutil.FileURL("ARCHITECTURE.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "file:///") {
			t.Errorf("FileURL() = %q, want file:/// prefix", got)
		}
		if !strings.HasSuffix(got, "/ARCHITECTURE.html") {
			t.Errorf("FileURL() = %q, want /ARCHITECTURE.html suffix", got)
		}
	})

	t.Run("spaces are escaped", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("unix path layout")
		}

		got, err := fileutil.FileURL("/tmp/my docs/page.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "file:///tmp/my%20docs/page.html" {
			t.Errorf("FileURL() = %q, want %q", got, "file:///tmp/my%20docs/page.html")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.FileURL("")
		if !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})
}
