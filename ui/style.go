package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/edward9487/minecraft-mod-converter/list"
)

// ToneColor maps a presentation tone to a terminal color.
func ToneColor(tone list.Tone) lipgloss.Color {
	switch tone {
	case list.ToneSuccess:
		return lipgloss.Color("10") // Green
	case list.ToneAccent:
		return lipgloss.Color("12") // Blue
	case list.ToneDanger:
		return lipgloss.Color("9") // Red
	default:
		return lipgloss.Color("11") // Yellow
	}
}

// RenderStatus renders a status string in its tone color.
func RenderStatus(status list.Status) string {
	style := lipgloss.NewStyle().Foreground(ToneColor(status.Tone()))
	return style.Render(string(status))
}

// Colorize applies a tone's color to arbitrary text.
func Colorize(text string, tone list.Tone) string {
	return lipgloss.NewStyle().Foreground(ToneColor(tone)).Render(text)
}
