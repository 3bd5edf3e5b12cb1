// Package config provides YAML-based game configuration loading and
// difficulty presets for the dots platform.
package config

// DotsConfig contains all configuration for the dots game.
type DotsConfig struct {
	Board     DotsBoard     `yaml:"board"`
	Palette   []string      `yaml:"palette"` // Colour names, see engine.ParseColor
	Session   DotsSession   `yaml:"session"`
	Animation DotsAnimation `yaml:"animation"`
}

// DotsBoard defines the board size in tokens.
type DotsBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DotsSession defines the classic mode move budget.
type DotsSession struct {
	Moves int `yaml:"moves"` // Clearing releases allowed per game, 0 = unlimited
}

// DotsAnimation defines presentation timing.
type DotsAnimation struct {
	FallSpeed float64 `yaml:"fall_speed"` // Rows a falling token moves per tick
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset keeps the loaded file untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
