package md2png

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2png/internal/fileutil"
	"github.com/alnah/go-md2png/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.DocumentConverter = (*pipeline.PandocConverter)(nil)
	_ pipeline.DocumentConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.StyleInjector     = (*pipeline.StyleInjection)(nil)
)

// Renderer converts a Markdown file to styled standalone HTML.
type Renderer struct {
	converter pipeline.DocumentConverter
	injector  pipeline.StyleInjector
	css       string
	logger    logrus.FieldLogger
}

// Render converts sourcePath to htmlPath, inserts the style sheet before
// </head> and rewrites the file. When the converter fails, htmlPath is not
// touched.
func (r *Renderer) Render(ctx context.Context, sourcePath, htmlPath string) (*RenderResult, error) {
	if sourcePath == "" || htmlPath == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, sourcePath, err)
		}
		return nil, fmt.Errorf("checking source %s: %w", sourcePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, sourcePath)
	}

	log := r.logger.WithFields(logrus.Fields{
		"source": sourcePath,
		"html":   htmlPath,
		"engine": r.converter.Name(),
	})
	log.Debug("converting markdown")

	if err := r.converter.Convert(ctx, sourcePath, htmlPath); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(htmlPath) // #nosec G304 -- path written by the converter above
	if err != nil {
		return nil, fmt.Errorf("%w: reading converter output: %v", ErrWriteHTML, err)
	}

	content, injected := r.injector.InjectStyle(ctx, string(raw), r.css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !injected {
		log.Warn("no </head> in converter output, style sheet not applied")
	} else if err := fileutil.WriteFile(htmlPath, []byte(content)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	doc, err := pipeline.InspectHTML(content)
	if err != nil {
		return nil, err
	}
	if !doc.HasBody {
		log.Warn("rendered document has an empty body")
	}
	log.WithFields(logrus.Fields{
		"title":    doc.Title,
		"headings": doc.Headings,
		"styles":   doc.StyleBlocks,
	}).Debug("html ready")

	return &RenderResult{
		HTMLPath:      htmlPath,
		StyleInjected: injected,
		Title:         doc.Title,
		Bytes:         len(content),
		Engine:        r.converter.Name(),
	}, nil
}
