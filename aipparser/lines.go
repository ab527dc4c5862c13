package aipparser

import "strings"

// Line is a single source line with its 1-based position in the raw input.
type Line struct {
	Num  int
	Text string
}

// IsBlank reports whether the line is empty or only whitespace.
func (l Line) IsBlank() bool { return strings.TrimSpace(l.Text) == "" }

// indent returns the number of leading space characters.
func (l Line) indent() int {
	return len(l.Text) - len(strings.TrimLeft(l.Text, " "))
}

// SplitLines normalizes line terminators, splits text into lines and drops
// whitespace-only lines from the start and end. Interior blank lines are kept.
func SplitLines(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for i, s := range raw {
		lines = append(lines, Line{Num: i + 1, Text: s})
	}

	start := 0
	for start < len(lines) && lines[start].IsBlank() {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1].IsBlank() {
		end--
	}
	return lines[start:end]
}

func joinLines(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Text)
	}
	return b.String()
}
