package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for document conversion.
var (
	ErrConversionFailed  = errors.New("markdown conversion failed")
	ErrConverterNotFound = errors.New("converter not found")
)

// DefaultPandocBinary is the executable looked up on PATH.
const DefaultPandocBinary = "pandoc"

// DocumentConverter converts a Markdown file into a standalone HTML file.
// On failure the destination must be left untouched.
type DocumentConverter interface {
	Convert(ctx context.Context, sourcePath, htmlPath string) error
	Name() string
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The process is killed when ctx is canceled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary comes from config, args are file paths

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts Markdown to HTML by invoking the Pandoc CLI.
type PandocConverter struct {
	Runner CommandRunner
	Binary string
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter() *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}, Binary: DefaultPandocBinary}
}

func (c *PandocConverter) Name() string { return "pandoc" }

// Convert runs `pandoc SRC -f markdown -t html --standalone -o HTML`.
// Pandoc only writes the output file on success.
func (c *PandocConverter) Convert(ctx context.Context, sourcePath, htmlPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	binary := c.Binary
	if binary == "" {
		binary = DefaultPandocBinary
	}

	_, stderr, err := c.Runner.Run(ctx, binary, PandocArgs(sourcePath, htmlPath)...)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrConverterNotFound, binary, err)
	}

	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = err.Error()
	}
	return fmt.Errorf("%w: %s", ErrConversionFailed, msg)
}

// PandocArgs returns the pandoc arguments for one conversion.
func PandocArgs(sourcePath, htmlPath string) []string {
	return []string{sourcePath, "-f", "markdown", "-t", "html", "--standalone", "-o", htmlPath}
}
