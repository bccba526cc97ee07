package style

import (
	"github.com/charmbracelet/lipgloss"
)

// adaptive builds a foreground style that switches colour with the
// terminal background. Colours are ANSI 256 indexes.
func adaptive(light, dark string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
}

// palette holds the style behind every markup tag
var palette = map[string]lipgloss.Style{
	"success": adaptive("28", "78").Bold(true),
	"error":   adaptive("160", "203").Bold(true),
	"warning": adaptive("172", "221").Bold(true),
	"info":    adaptive("31", "80"),
	"muted":   adaptive("243", "248"),
	"bold":    lipgloss.NewStyle().Bold(true),

	"path": adaptive("240", "250").Italic(true),
	"name": adaptive("25", "75").Bold(true),

	// dependency sources and refs
	"local":  adaptive("32", "117"),
	"remote": adaptive("97", "141"),
	"ref":    adaptive("166", "214").Bold(true),
}

// Indent pads s with two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
