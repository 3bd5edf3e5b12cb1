package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dots/internal/config"
	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/registry"
)

// Difficulty choices in the order they cycle.
var dotsPresets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// DotsSelection holds the user's choice from the dots mode menu.
type DotsSelection struct {
	GameID string // "dots" or "dots_zen"
	Preset config.DifficultyPreset
}

// Apply hands the chosen preset to game for its next Reset.
func (s DotsSelection) Apply(game registry.Game) {
	if p, ok := game.(registry.Presetter); ok {
		p.SetPreset(string(s.Preset))
	}
}

// DotsModeModel lets users choose classic or zen mode and a difficulty.
type DotsModeModel struct {
	cursor    int // 0 classic, 1 zen, 2 difficulty
	preset    int // index into dotsPresets
	width     int
	height    int
	keyMapper *KeyMapper
	selection DotsSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewDotsModeModel creates a new dots mode selection model.
func NewDotsModeModel(width, height int) DotsModeModel {
	return DotsModeModel{
		preset:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DotsModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DotsModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DotsModeModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < 2 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == 2 {
			m.preset = (m.preset + len(dotsPresets) - 1) % len(dotsPresets)
		}
	case MenuActionRight:
		if m.cursor == 2 {
			m.preset = (m.preset + 1) % len(dotsPresets)
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose("dots")
		case 1:
			return m.choose("dots_zen")
		case 2:
			m.preset = (m.preset + 1) % len(dotsPresets)
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m DotsModeModel) choose(gameID string) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = DotsSelection{GameID: gameID, Preset: dotsPresets[m.preset]}
	return m, tea.Quit
}

// View renders the mode selection.
func (m DotsModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(banner("DOTS"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	rows := []string{
		"Classic (limited moves)",
		"Zen (no move limit)",
		fmt.Sprintf("Difficulty: < %s >", dotsPresets[m.preset]),
	}

	for i, row := range rows {
		line := "  " + menuItemStyle.Render(row)
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + row)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Left/Right: Difficulty  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m DotsModeModel) Selected() *DotsSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DotsModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DotsModeModel) WantsBack() bool {
	return m.back
}

// RunDotsModeSelector runs the dots mode selection. The selection is nil
// when the user backed out; quit reports a request to leave entirely.
func RunDotsModeSelector(cfg core.RuntimeConfig) (sel *DotsSelection, quit bool, err error) {
	model := NewDotsModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(DotsModeModel)
	if !ok || m.IsQuitting() {
		return nil, true, nil
	}
	if m.WantsBack() {
		return nil, false, nil
	}

	return m.Selected(), false, nil
}
