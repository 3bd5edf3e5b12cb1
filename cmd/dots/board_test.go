package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dots/internal/config"
)

func TestPrintBoard(t *testing.T) {
	cfg := config.DefaultDotsConfig()

	var a, b bytes.Buffer
	if err := printBoard(&a, cfg, 5, 3, 42); err != nil {
		t.Fatalf("printBoard: %v", err)
	}
	if err := printBoard(&b, cfg, 5, 3, 42); err != nil {
		t.Fatalf("printBoard: %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("same seed printed different boards:\n%s\n%s", a.String(), b.String())
	}

	lines := strings.Split(strings.TrimRight(a.String(), "\n"), "\n")
	if lines[0] != "seed 42, 5x3" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected header plus 3 rows:\n%s", len(lines), a.String())
	}
	for _, row := range lines[1:] {
		if len(strings.Fields(row)) != 5 {
			t.Errorf("row %q does not have 5 dots", row)
		}
	}
}

func TestPrintBoardRejectsBadPalette(t *testing.T) {
	cfg := config.DefaultDotsConfig()
	cfg.Palette = []string{"red", "purple"}

	var out bytes.Buffer
	if err := printBoard(&out, cfg, 0, 0, 1); err == nil {
		t.Error("expected an error for an unknown color")
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr, port string
	}{
		{":23234", "23234"},
		{"0.0.0.0:2222", "2222"},
		{"[::1]:22", "22"},
		{"nonsense", "nonsense"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.port {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.port)
		}
	}
}
