// Package assets provides the stylesheet injected into rendered documents.
//
// Styles are embedded at compile time from the styles/ directory and looked
// up by name (without the .css extension):
//
//	styles/
//	└── architecture.css   # dark theme used for architecture screenshots
//
// Asset names are validated so a name can never escape the styles/ directory.
package assets
