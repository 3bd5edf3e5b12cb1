package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dots/internal/storage"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, map[string]*storage.GameStats{
		"dots_zen": {GameID: "dots_zen", GamesCount: 1, HighScore: 30, AvgScore: 30, BestSeed: 4242},
		"dots":     {GameID: "dots", GamesCount: 2, HighScore: 12, AvgScore: 9, BestSeed: 7},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "dots ") {
		t.Errorf("modes not sorted, second line %q", lines[1])
	}
	if !strings.Contains(lines[2], "4242") {
		t.Errorf("best seed missing from %q", lines[2])
	}
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, nil)
	if !strings.Contains(buf.String(), "No games played") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
