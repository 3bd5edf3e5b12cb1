package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dots/internal/games/dots"
)

var debugFile *os.File

// setupDebugLog routes game logging to ~/.dots/debug.log. The terminal
// belongs to the game, so nothing is logged there.
func setupDebugLog(enabled bool) error {
	if !enabled {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".dots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open debug log: %w", err)
	}
	debugFile = f

	dots.SetLogger(log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "dots",
	}))
	return nil
}

func closeDebugLog() {
	if debugFile == nil {
		return
	}
	dots.SetLogger(nil)
	debugFile.Close()
	debugFile = nil
}
