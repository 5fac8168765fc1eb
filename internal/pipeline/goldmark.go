package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	renderhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2png/internal/fileutil"
)

// HighlightStyle is the chroma theme used for fenced code blocks.
const HighlightStyle = "monokai"

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			renderhtml.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

func (c *GoldmarkConverter) Name() string { return "goldmark" }

// Convert reads sourcePath and writes a standalone HTML5 document to htmlPath.
// The title is the first level-1 heading, or the source file name without
// extension when the document has none.
func (c *GoldmarkConverter) Convert(ctx context.Context, sourcePath, htmlPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := os.ReadFile(sourcePath) // #nosec G304 -- user-provided source document
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrConversionFailed, sourcePath, err)
	}

	fallback := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	doc, err := c.ToHTML(ctx, source, fallback)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFile(htmlPath, []byte(doc)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrConversionFailed, htmlPath, err)
	}
	return nil
}

// ToHTML converts Markdown source to a standalone HTML5 document.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, source []byte, fallbackTitle string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		root := c.md.Parser().Parse(text.NewReader(source))

		title := firstHeading(root, source)
		if title == "" {
			title = fallbackTitle
		}

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, source, root); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversionFailed, err)}
			return
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// firstHeading returns the plain text of the first level-1 heading.
func firstHeading(root ast.Node, source []byte) string {
	var heading ast.Node
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			heading = h
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if heading == nil {
		return ""
	}

	var buf strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
