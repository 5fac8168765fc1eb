package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2png [flags] [input]")
	fmt.Fprintln(w, "       md2png <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a Markdown file to styled HTML and a full-page PNG.")
	fmt.Fprintln(w, "Without arguments, ARCHITECTURE.md becomes ARCHITECTURE.html and ARCHITECTURE.png.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check pandoc and Chrome availability")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	printRunFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2png help <command>' for details on a specific command.")
}

// printRunFlags prints the conversion flags.
func printRunFlags(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Markdown source (default ARCHITECTURE.md)")
	fmt.Fprintln(w, "      --html <path>         Intermediate HTML (default ARCHITECTURE.html)")
	fmt.Fprintln(w, "  -o, --output <path>       PNG output (default ARCHITECTURE.png)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converter:")
	fmt.Fprintln(w, "      --engine <s>          pandoc, goldmark, auto (default pandoc)")
	fmt.Fprintln(w, "      --pandoc <path>       pandoc executable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture:")
	fmt.Fprintln(w, "      --width <n>           Viewport width in pixels (default 1400)")
	fmt.Fprintln(w, "      --height <n>          Viewport height in pixels (default 1080)")
	fmt.Fprintln(w, "      --settle <d>          Wait after page load (default 1s)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load limit, 0 = none (default 60s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --no-open             Do not open the results")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostic logging")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2png doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check pandoc, Chrome and the environment.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: md2png config [-c <name>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the effective configuration as YAML.")
		fmt.Fprintln(env.Stdout, "Sources, highest first: flags, MD2PNG_* variables, config file, defaults.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2png version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2png help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
