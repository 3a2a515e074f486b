// Package effects contains the built-in background effects: independent
// plugins behind the bgcraft.Effect lifecycle contract, described to the
// builder by the descriptors returned from Descriptors.
package effects

import (
	"embed"
	"fmt"

	"github.com/bgcraft/bgcraft"
)

//go:embed starfield.go rain.go bokeh.go waves.go
var sources embed.FS

// sourceFiles maps effect display names to their embedded source files,
// consumed by the snippet exporter.
var sourceFiles = map[string]string{
	"Starfield": "starfield.go",
	"Rain":      "rain.go",
	"Bokeh":     "bokeh.go",
	"Waves":     "waves.go",
}

// Source returns the Go source of the named effect for snippet export.
func Source(name string) (string, error) {
	file, ok := sourceFiles[name]
	if !ok {
		return "", fmt.Errorf("effect source: no source for %q", name)
	}
	data, err := sources.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("effect source: %w", err)
	}
	return string(data), nil
}

// Descriptors returns the registry entries for all built-in effects, in
// display order.
func Descriptors() []bgcraft.Descriptor {
	return []bgcraft.Descriptor{
		StarfieldDescriptor(),
		RainDescriptor(),
		BokehDescriptor(),
		WavesDescriptor(),
	}
}
