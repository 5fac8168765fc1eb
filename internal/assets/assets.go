package assets

// DefaultStyleName is the style injected into every rendered document.
const DefaultStyleName = "architecture"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// DefaultStyle returns the content of the built-in architecture stylesheet.
func DefaultStyle() (string, error) {
	return defaultLoader.LoadStyle(DefaultStyleName)
}
