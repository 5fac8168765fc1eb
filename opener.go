package md2png

import (
	"fmt"
	"os/exec"
)

// Opener shows a file in the user's default viewer.
type Opener interface {
	Open(path string) error
}

// SystemOpener starts the platform file opener (open, xdg-open or
// rundll32) and does not wait for the viewer.
type SystemOpener struct {
	// start launches the command; replaced in tests.
	start func(name string, args ...string) error
}

// NewSystemOpener returns an Opener for the current platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{start: startDetached}
}

// Open launches the viewer for path.
func (o *SystemOpener) Open(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	name, args := openCommand(path)
	start := o.start
	if start == nil {
		start = startDetached
	}
	if err := start(name, args...); err != nil {
		return fmt.Errorf("opening %s with %s: %w", path, name, err)
	}
	return nil
}

// startDetached starts the command and reaps it in the background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 -- fixed opener binary, path argument
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
