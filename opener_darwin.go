package md2png

func openCommand(path string) (string, []string) {
	return "open", []string{path}
}
