// Package pipeline implements the Markdown-to-HTML half of md2png.
//
// This package handles conversion and post-processing of the HTML document:
//   - Markdown to standalone HTML via the pandoc CLI or goldmark
//   - Style block injection before </head>
//   - HTML inspection (title, style blocks) with golang.org/x/net/html
//
// Screenshot capture is handled separately by the root md2png package using
// headless Chrome (go-rod).
package pipeline
