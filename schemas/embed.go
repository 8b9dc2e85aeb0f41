// Package schemas holds the JSON Schemas for the fitter's input and output artifacts.
package schemas

import "embed"

// Schema file names
const (
	Document     = "document.schema.json"
	SizingConfig = "sizing_config.schema.json"
	FitResult    = "fit_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of an embedded schema file
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
