package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	faint   lipgloss.Color
	accent  lipgloss.Color
	good    lipgloss.Color
	bad     lipgloss.Color
	keyFg   lipgloss.Color
	keyHiBg lipgloss.Color
	keyHiFg lipgloss.Color
}

var darkPalette = palette{
	text:    lipgloss.Color("#F0F0F0"),
	muted:   lipgloss.Color("#8C8C8C"),
	faint:   lipgloss.Color("#6E6E6E"),
	accent:  lipgloss.Color("#C89A3A"),
	good:    lipgloss.Color("#73D13D"),
	bad:     lipgloss.Color("#FF4D4F"),
	keyFg:   lipgloss.Color("#BFBFBF"),
	keyHiBg: lipgloss.Color("#C89A3A"),
	keyHiFg: lipgloss.Color("#1F1F1F"),
}

var lightPalette = palette{
	text:    lipgloss.Color("#1F1F1F"),
	muted:   lipgloss.Color("#595959"),
	faint:   lipgloss.Color("#8C8C8C"),
	accent:  lipgloss.Color("#AD6800"),
	good:    lipgloss.Color("#389E0D"),
	bad:     lipgloss.Color("#CF1322"),
	keyFg:   lipgloss.Color("#434343"),
	keyHiBg: lipgloss.Color("#AD6800"),
	keyHiFg: lipgloss.Color("#FFFFFF"),
}

type styles struct {
	title   lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	footer  lipgloss.Style
	accent  lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	pending lipgloss.Style
	cursor  lipgloss.Style
	label   lipgloss.Style
	key     lipgloss.Style
	keyHi   lipgloss.Style
	keyMod  lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	key := lipgloss.NewStyle().
		Foreground(p.keyFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.faint).
		Padding(0, 1)
	return styles{
		title:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		text:    lipgloss.NewStyle().Foreground(p.text),
		muted:   lipgloss.NewStyle().Foreground(p.muted),
		footer:  lipgloss.NewStyle().Foreground(p.faint),
		accent:  lipgloss.NewStyle().Foreground(p.accent),
		good:    lipgloss.NewStyle().Foreground(p.good),
		bad:     lipgloss.NewStyle().Foreground(p.bad),
		pending: lipgloss.NewStyle().Foreground(p.muted),
		cursor:  lipgloss.NewStyle().Foreground(p.accent).Underline(true),
		label: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.faint).
			Padding(1, 4),
		key:    key,
		keyHi:  key.Foreground(p.keyHiFg).Background(p.keyHiBg).BorderForeground(p.keyHiBg).Bold(true),
		keyMod: key.Foreground(p.keyHiBg).BorderForeground(p.keyHiBg),
	}
}
