package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#e4e4e7"
	colorMuted   lipgloss.Color = "#a1a1aa"
	colorBorder  lipgloss.Color = "#3f3f46"
	colorSurface lipgloss.Color = "#18181b"
	colorSuccess lipgloss.Color = "#4ade80"
	colorError   lipgloss.Color = "#f87171"
)

// theme holds the styles that depend on the configured accent.
type theme struct {
	accent lipgloss.Color

	title     lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	selected  lipgloss.Style
	chip      lipgloss.Style
	tile      lipgloss.Style
	button    lipgloss.Style
	buttonOn  lipgloss.Style
	navBar    lipgloss.Style
	navActive lipgloss.Style
	navItem   lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	footer    lipgloss.Style
	key       lipgloss.Style
	keyDesc   lipgloss.Style
	card      lipgloss.Style
	menu      lipgloss.Style
}

func newTheme(accent string) theme {
	if accent == "" {
		accent = "#FF3D00"
	}
	a := lipgloss.Color(accent)
	return theme{
		accent:    a,
		title:     lipgloss.NewStyle().Bold(true).Foreground(colorText),
		heading:   lipgloss.NewStyle().Bold(true).Underline(true),
		muted:     lipgloss.NewStyle().Foreground(colorMuted),
		selected:  lipgloss.NewStyle().Foreground(a).Bold(true),
		chip:      lipgloss.NewStyle().Foreground(colorText).Background(colorBorder).Padding(0, 1),
		tile:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		button:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorBorder).Padding(0, 1),
		buttonOn:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(a).Foreground(a).Padding(0, 1),
		navBar:    lipgloss.NewStyle().Background(colorSurface).Foreground(colorText),
		navActive: lipgloss.NewStyle().Background(colorSurface).Foreground(a).Bold(true).Padding(0, 1),
		navItem:   lipgloss.NewStyle().Background(colorSurface).Foreground(colorMuted).Padding(0, 1),
		status:    lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface),
		statusErr: lipgloss.NewStyle().Foreground(colorError).Background(colorSurface),
		footer:    lipgloss.NewStyle().Background(colorSurface),
		key:       lipgloss.NewStyle().Foreground(a).Bold(true).Background(colorSurface),
		keyDesc:   lipgloss.NewStyle().Foreground(colorMuted).Background(colorSurface),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(a).Padding(1, 2),
		menu:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorBorder).Padding(0, 1),
	}
}
