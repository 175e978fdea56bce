package config

import (
	_ "embed"
)

//go:embed embedded/defaults.yml
var defaultConfig []byte

// DefaultsContent returns the embedded default configuration.
func DefaultsContent() string {
	return string(defaultConfig)
}
