//go:build !darwin && !windows

package md2png

func openCommand(path string) (string, []string) {
	return "xdg-open", []string{path}
}
