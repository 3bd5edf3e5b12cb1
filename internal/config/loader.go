package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dots/internal/games/dots/engine"
)

// LoadDots loads the dots configuration.
// Search order: customPath -> ~/.dots/configs/dots.yaml -> ./configs/dots.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error. Broken
// files on the search path are skipped.
func LoadDots(customPath string) (DotsConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DotsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDots(data)
		if err != nil {
			return DotsConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("dots.yaml"), filepath.Join("configs", "dots.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseDots(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseDots(defaultDotsYAML)
	if err != nil {
		return DefaultDotsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseDots decodes YAML over the built-in defaults, so a file only needs
// the keys it changes.
func parseDots(data []byte) (DotsConfig, error) {
	cfg := DefaultDotsConfig()
	cfg.Palette = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DotsConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultDotsConfig().Palette
	}
	if err := cfg.Validate(); err != nil {
		return DotsConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path of a file in ~/.dots/configs.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dots", "configs", filename)
}

// Validation errors returned by DotsConfig.Validate.
var (
	ErrBoardTooSmall   = errors.New("config: board must be at least 2x2")
	ErrPaletteTooSmall = errors.New("config: palette needs at least 2 colors")
	ErrUnknownColor    = errors.New("config: unknown palette color")
	ErrDuplicateColor  = errors.New("config: duplicate palette color")
	ErrNegativeMoves   = errors.New("config: session moves must not be negative")
	ErrFallSpeed       = errors.New("config: fall_speed must be positive")
)

// Validate checks the configuration for values the game cannot run with.
func (c DotsConfig) Validate() error {
	if c.Board.Width < 2 || c.Board.Height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrBoardTooSmall, c.Board.Width, c.Board.Height)
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.Session.Moves < 0 {
		return ErrNegativeMoves
	}
	if c.Animation.FallSpeed <= 0 {
		return ErrFallSpeed
	}
	return nil
}

// Colors resolves the palette names to engine colors.
func (c DotsConfig) Colors() ([]engine.Color, error) {
	if len(c.Palette) < 2 {
		return nil, ErrPaletteTooSmall
	}

	colors := make([]engine.Color, 0, len(c.Palette))
	seen := make(map[engine.Color]bool, len(c.Palette))
	for _, name := range c.Palette {
		col, ok := engine.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownColor, name)
		}
		if seen[col] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateColor, name)
		}
		seen[col] = true
		colors = append(colors, col)
	}
	return colors, nil
}

// ApplyDotsPreset modifies the config based on a difficulty preset.
// Easy plays with fewer colors and more moves, hard the other way round.
func ApplyDotsPreset(cfg *DotsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Palette = []string{"red", "green", "yellow"}
		cfg.Session.Moves = 40
	case DifficultyHard:
		cfg.Palette = []string{"red", "green", "yellow", "magenta", "blue"}
		cfg.Session.Moves = 20
	}
}
