// internal/tui/styles.go
//
// lipgloss colors and styles for tiles and keys.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
)

// Color constants
const (
	ColorMatched = "28"  // green
	ColorMissed  = "178" // yellow
	ColorWrong   = "239" // dark gray
	ColorEmpty   = "236"
	ColorText    = "255"
	ColorDim     = "241"
	ColorActive  = "170"
	ColorDanger  = "196"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorActive)).
			MarginBottom(1)

	tileBase = lipgloss.NewStyle().
			Bold(true).
			Width(3).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color(ColorText))

	keyBase = lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(ColorText))

	MessageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorMatched)).
			MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)).
			Italic(true)

	LostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)).
			MarginTop(1)
)

// statusColor maps a tile status to its background color.
func statusColor(s game.TileStatus) lipgloss.Color {
	switch s {
	case game.StatusMatched:
		return lipgloss.Color(ColorMatched)
	case game.StatusMissed:
		return lipgloss.Color(ColorMissed)
	case game.StatusWrong:
		return lipgloss.Color(ColorWrong)
	default:
		return lipgloss.Color(ColorEmpty)
	}
}

// TileStyle returns the style for a board tile.
func TileStyle(s game.TileStatus, current bool) lipgloss.Style {
	st := tileBase.Background(statusColor(s))
	if current {
		st = st.Underline(true)
	}
	return st
}

// KeyStyle returns the style for an on-screen keyboard key.
func KeyStyle(s game.TileStatus) lipgloss.Style {
	if s == game.StatusUnchecked {
		return keyBase.Background(lipgloss.Color(ColorDim))
	}
	return keyBase.Background(statusColor(s))
}
