// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - TileStatus: per-tile evaluation result (unchecked/matched/missed/wrong).
//   - Tile, Attempt, Board: the fixed grid of guesses.
//   - Cursor: position of the next tile to fill.
//   - Result: outcome of a single submission.

package game

import "encoding/json"

// TileStatus represents the evaluation result for a single tile.
// Possible values:
//   - "unchecked": the attempt holding the tile has not been submitted.
//   - "matched":   letter is correct and in the correct position.
//   - "missed":    letter exists in the target but at a different position.
//   - "wrong":     letter does not exist in the target at all.
type TileStatus string

const (
	StatusUnchecked TileStatus = "unchecked"
	StatusMatched   TileStatus = "matched"
	StatusMissed    TileStatus = "missed"
	StatusWrong     TileStatus = "wrong"
)

// rank orders statuses by how much they tell the player about a letter.
// The keyboard map only ever moves up this order.
func (s TileStatus) rank() int {
	switch s {
	case StatusMatched:
		return 3
	case StatusMissed:
		return 2
	case StatusWrong:
		return 1
	default:
		return 0
	}
}

// Tile is one letter cell. Letter is 0 while the tile is empty.
type Tile struct {
	Letter rune
	Status TileStatus
}

// MarshalJSON renders the letter as a string ("" when empty).
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter string     `json:"letter"`
		Status TileStatus `json:"status"`
	}{Letter: t.String(), Status: t.Status})
}

// String returns the tile letter, or "" for an empty tile.
func (t Tile) String() string {
	if t.Letter == 0 {
		return ""
	}
	return string(t.Letter)
}

// Attempt is one guess row.
type Attempt []Tile

// Word joins the row's letters. Empty tiles contribute nothing.
func (a Attempt) Word() string {
	b := make([]rune, 0, len(a))
	for _, t := range a {
		if t.Letter != 0 {
			b = append(b, t.Letter)
		}
	}
	return string(b)
}

// Board is the full grid of attempts.
type Board []Attempt

// newBoard builds an attempts x letters grid of empty unchecked tiles.
func newBoard(attempts, letters int) Board {
	b := make(Board, attempts)
	for i := range b {
		row := make(Attempt, letters)
		for j := range row {
			row[j] = Tile{Status: StatusUnchecked}
		}
		b[i] = row
	}
	return b
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = append(Attempt(nil), row...)
	}
	return out
}

// Cursor identifies the next tile to be filled.
//
// Attempt == attempts means the board is exhausted; Tile == letters means the
// active row is full and ready to submit.
type Cursor struct {
	Attempt int `json:"attempt"`
	Tile    int `json:"tile"`
}

// Result describes a completed submission.
type Result struct {
	Attempt  int          `json:"attempt"` // zero-based index of the submitted row
	Word     string       `json:"word"`
	Statuses []TileStatus `json:"statuses"`
	Solved   bool         `json:"solved"`
}
