// Package md2png converts a Markdown document into a styled standalone HTML
// page and a full-page PNG screenshot of that page.
//
// # Quick Start
//
// Create a pipeline, run it on a job, and close it when done:
//
//	p, err := md2png.NewPipeline()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	result, err := p.Run(ctx, md2png.DefaultJob())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Capture.PNGPath, result.Capture.Height)
//
// DefaultJob reads ARCHITECTURE.md and writes ARCHITECTURE.html and
// ARCHITECTURE.png in the working directory.
//
// # Stages
//
//  1. Render: the converter (pandoc by default, goldmark as a fallback)
//     writes a standalone HTML file, the embedded style sheet is inserted
//     once before </head>, and the file is rewritten in place.
//  2. Capture: headless Chrome (go-rod) loads the HTML through a file://
//     URL at a 1400x1080 viewport, waits the settle delay, and writes a PNG
//     of the whole scrollable page.
//
// Capture never starts when Render fails. Render and Capture are also
// exposed separately so callers can report progress between stages.
//
// # Configuration
//
// Use functional options to customize the pipeline:
//
//	p, err := md2png.NewPipeline(
//	    md2png.WithEngine("auto"),
//	    md2png.WithViewport(md2png.Viewport{Width: 1600, Height: 900}),
//	    md2png.WithSettleDelay(2 * time.Second),
//	    md2png.WithLogger(logrus.StandardLogger()),
//	)
//
// # Browser
//
// Chrome is launched lazily on the first capture and released by Close.
// Set ROD_BROWSER_BIN to use a pre-installed browser and ROD_NO_SANDBOX=1
// (or CI=true) in containers.
package md2png
