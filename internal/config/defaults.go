package config

import (
	_ "embed"
)

//go:embed defaults/mines.yaml
var defaultMinesYAML []byte

// DefaultConfig returns the built-in presets.
func DefaultConfig() Config {
	return Config{
		Default: "beginner",
		Presets: map[string]Preset{
			"beginner":     {Height: 10, Width: 10, Mines: 10},
			"intermediate": {Height: 16, Width: 16, Mines: 25},
			"expert":       {Height: 16, Width: 30, Mines: 99},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMinesYAML
}
