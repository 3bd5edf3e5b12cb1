package engine

import (
	"strings"
	"unicode"
)

// ASCII renders the snapshot as one line per row, top row first, using a
// letter per color. Selected tokens are shown in lower case.
func (s Snapshot) ASCII() string {
	selected := make(map[TokenID]bool, len(s.Chain))
	for _, t := range s.Chain {
		selected[t.ID] = true
	}

	var sb strings.Builder
	sb.Grow((s.Width*2 + 1) * s.Height)

	for y := s.Height - 1; y >= 0; y-- {
		for x := 0; x < s.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if y >= len(s.Columns[x]) {
				sb.WriteByte('.')
				continue
			}
			t := s.Columns[x][y]
			ch := t.Color.Char()
			if selected[t.ID] {
				ch = unicode.ToLower(ch)
			}
			sb.WriteRune(ch)
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
