package historyui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// fitLines shapes s into exactly height lines, each at least width cells.
func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = padRight(line, width)
	}
	return strings.Join(out, "\n")
}

func padRight(line string, width int) string {
	if gap := width - lipgloss.Width(line); gap > 0 {
		return line + strings.Repeat(" ", gap)
	}
	return line
}
