// internal/tui/view.go
//
// Rendering for the terminal host.
// Responsibilities:
//   - Board tiles, on-screen keyboard, status line and help footer.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
)

var qwertyRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

const keysPerRow = 10

// View implements tea.Model.
func (m Model) View() string {
	snap := m.router.Game().Snapshot()

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("WORDLE  round %d", snap.Round)))
	b.WriteString("\n")
	b.WriteString(renderBoard(snap))
	b.WriteString("\n\n")
	b.WriteString(renderKeyboard(snap.KeyMap))
	b.WriteString("\n")

	switch {
	case snap.Message != "":
		b.WriteString(MessageStyle.Render(wordwrap.String(snap.Message, m.width)))
		b.WriteString("\n")
	case snap.Over:
		b.WriteString(LostStyle.Render(wordwrap.String(
			fmt.Sprintf("Out of attempts. The word was %q. Press esc to play again.", snap.Word), m.width)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderBoard(snap game.Snapshot) string {
	rows := make([]string, 0, len(snap.Board))
	for i, attempt := range snap.Board {
		tiles := make([]string, 0, len(attempt))
		for j, t := range attempt {
			current := !snap.Over && i == snap.Cursor.Attempt && j == snap.Cursor.Tile
			tiles = append(tiles, TileStyle(t.Status, current).Render(tileText(t.Letter)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(tiles)...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func tileText(r rune) string {
	if r == 0 {
		return "·"
	}
	return strings.ToUpper(string(r))
}

// keyboardRows lays the alphabet out as QWERTY when it is the default
// alphabet and in fixed-width rows otherwise.
func keyboardRows(letters []rune) []string {
	if string(letters) == game.DefaultAlphabet {
		return qwertyRows
	}
	var rows []string
	for len(letters) > 0 {
		n := min(keysPerRow, len(letters))
		rows = append(rows, string(letters[:n]))
		letters = letters[n:]
	}
	return rows
}

func renderKeyboard(k game.KeyMap) string {
	var rows []string
	for _, row := range keyboardRows(k.Letters()) {
		keys := make([]string, 0, len(row))
		for _, r := range row {
			st, _ := k.Get(r)
			keys = append(keys, KeyStyle(st).Render(strings.ToUpper(string(r))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, spaced(keys)...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// spaced puts a single-space gap between cells.
func spaced(cells []string) []string {
	out := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}
