package pipeline

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Engine names.
const (
	EnginePandoc   = "pandoc"
	EngineGoldmark = "goldmark"
	EngineAuto     = "auto"
)

// ErrUnknownEngine indicates an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown conversion engine")

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// NewConverter returns the DocumentConverter for engine.
// "auto" selects pandoc when binary is found on PATH, goldmark otherwise.
// A nil runner defaults to ExecRunner; an empty binary to "pandoc".
func NewConverter(engine, binary string, runner CommandRunner) (DocumentConverter, error) {
	if runner == nil {
		runner = &ExecRunner{}
	}
	if binary == "" {
		binary = DefaultPandocBinary
	}

	switch strings.ToLower(engine) {
	case "", EnginePandoc:
		return &PandocConverter{Runner: runner, Binary: binary}, nil
	case EngineGoldmark:
		return NewGoldmarkConverter(), nil
	case EngineAuto:
		if _, err := lookPath(binary); err == nil {
			return &PandocConverter{Runner: runner, Binary: binary}, nil
		}
		return NewGoldmarkConverter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
