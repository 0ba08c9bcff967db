// internal/game/snapshot.go
//
// Read-only views of a game.
// Responsibilities:
//   - Snapshot for hosts and spectators; the word only once finished.
//   - Share: spoiler-free emoji grid.

package game

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is a read-only copy of everything a host renders.
// Word is only filled in once the game is finished.
type Snapshot struct {
	ID        string    `json:"id"`
	Round     int       `json:"round"`
	Attempts  int       `json:"attempts"`
	Letters   int       `json:"letters"`
	Board     Board     `json:"board"`
	KeyMap    KeyMap    `json:"keyMap"`
	Cursor    Cursor    `json:"cursor"`
	Message   string    `json:"message"`
	Solved    bool      `json:"solved"`
	Over      bool      `json:"over"`
	Finished  bool      `json:"finished"`
	Word      string    `json:"word,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot copies the observable state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:        g.id,
		Round:     g.round,
		Attempts:  g.cfg.Attempts,
		Letters:   g.cfg.Letters,
		Board:     g.board.Clone(),
		KeyMap:    g.keys.Clone(),
		Cursor:    g.cursor,
		Message:   g.message,
		Solved:    g.solved,
		Over:      g.Over(),
		Finished:  g.Finished(),
		UpdatedAt: time.Now().UTC(),
	}
	if s.Finished {
		s.Word = g.cfg.Word
	}
	return s
}

var shareSquares = map[TileStatus]string{
	StatusMatched: "🟩",
	StatusMissed:  "🟨",
	StatusWrong:   "⬛",
}

// Share renders the submitted rows as the familiar spoiler-free emoji grid:
//
//	Wordle 3/6
//
//	⬛🟨⬛⬛⬛
//	🟩⬛🟨⬛⬛
//	🟩🟩🟩🟩🟩
func (g *Game) Share() string {
	used := g.cursor.Attempt
	score := "X"
	if g.solved {
		used = g.solvedIn
		score = fmt.Sprint(used)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Wordle %s/%d\n", score, g.cfg.Attempts)
	for i := 0; i < used && i < len(g.board); i++ {
		sb.WriteByte('\n')
		for _, t := range g.board[i] {
			sb.WriteString(shareSquares[t.Status])
		}
	}
	return sb.String()
}
