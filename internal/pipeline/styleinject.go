package pipeline

import (
	"context"
	"strings"
)

// StyleInjector defines the contract for style injection into HTML.
type StyleInjector interface {
	InjectStyle(ctx context.Context, htmlContent, cssContent string) (string, bool)
}

// StyleInjection inserts CSS as a single <style> block before </head>.
type StyleInjection struct{}

// InjectStyle inserts one <style> block immediately before the first
// </head> (case-insensitive). When there is no </head>, the css is empty or
// ctx is done, htmlContent is returned unchanged and the bool is false.
func (s *StyleInjection) InjectStyle(ctx context.Context, htmlContent, cssContent string) (string, bool) {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent, false
	}

	idx := indexHeadClose(htmlContent)
	if idx == -1 {
		return htmlContent, false
	}

	return htmlContent[:idx] + StyleBlock(cssContent) + htmlContent[idx:], true
}

// indexHeadClose returns the byte offset of the first </head>, matched
// ASCII case-insensitively on the original bytes, or -1.
func indexHeadClose(s string) int {
	const tag = "</head>"
	for i := 0; i+len(tag) <= len(s); {
		j := strings.IndexByte(s[i:], '<')
		if j == -1 {
			return -1
		}
		i += j
		if i+len(tag) > len(s) {
			return -1
		}
		if strings.EqualFold(s[i:i+len(tag)], tag) {
			return i
		}
		i++
	}
	return -1
}

// StyleBlock wraps css in a <style> element.
func StyleBlock(css string) string {
	css = sanitizeCSS(css)
	if !strings.HasSuffix(css, "\n") {
		css += "\n"
	}
	return "<style>\n" + css + "</style>\n"
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
