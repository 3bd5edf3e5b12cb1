package config

import (
	_ "embed"
)

//go:embed defaults/dots.yaml
var defaultDotsYAML []byte

// DefaultDotsConfig returns the built-in dots configuration, used when no
// YAML source can be read.
func DefaultDotsConfig() DotsConfig {
	return DotsConfig{
		Board: DotsBoard{
			Width:  6,
			Height: 6,
		},
		Palette: []string{"red", "green", "yellow", "magenta"},
		Session: DotsSession{
			Moves: 30,
		},
		Animation: DotsAnimation{
			FallSpeed: 0.5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "dots", "dots_zen":
		return defaultDotsYAML
	default:
		return nil
	}
}
