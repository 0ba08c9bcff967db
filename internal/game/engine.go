// internal/game/engine.go
//
// Core game engine for a single Wordle board.
// Responsibilities:
//   - Build and reset the attempts x letters grid, keyboard map and cursor.
//   - Move the cursor and write letters into tiles within bounds.
//   - Submit a full row: classify, update the keyboard map, detect a win,
//     advance to the next row and tell the Notifier.
//   - Report the terminal state (every row used). A win does not end input;
//     Finished covers "won or out of rows" for display.
//
// Notes:
//   - A Game is not safe for concurrent use. Hosts feed it one event at a
//     time and read Snapshot between events.
//   - Out-of-range operations return errors instead of touching the board.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrOutOfBounds is returned for tile or attempt indexes off the board.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrRowIncomplete is returned when submitting a row that is not full.
	ErrRowIncomplete = errors.New("row is not full")
	// ErrGameOver is returned for moves made once every row is used.
	ErrGameOver = errors.New("game finished")
)

// Notifier receives every submitted word. Implementations must not block and
// must not expect the game to react to them.
type Notifier interface {
	NotifySubmission(attempt int, word string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(attempt int, word string)

// NotifySubmission calls f.
func (f NotifierFunc) NotifySubmission(attempt int, word string) { f(attempt, word) }

type nopNotifier struct{}

func (nopNotifier) NotifySubmission(int, string) {}

// Game holds the state of a single board.
type Game struct {
	cfg      Config
	notifier Notifier

	id      string
	round   int
	board   Board
	keys    KeyMap
	cursor  Cursor
	message string
	solved  bool
	// solvedIn is the 1-based attempt of the first exact match, 0 if none.
	solvedIn int
}

// New validates cfg and returns a freshly reset game.
// A nil notifier is replaced with one that discards submissions.
func New(cfg Config, n Notifier) (*Game, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		n = nopNotifier{}
	}
	g := &Game{cfg: cfg, notifier: n}
	g.Reset()
	return g, nil
}

// Reset starts the game over: empty board, unchecked keyboard, cursor at the
// first tile, no message. Calling it repeatedly yields the same state apart
// from the game ID and round counter.
func (g *Game) Reset() {
	g.id = uuid.NewString()
	g.round++
	g.cursor = Cursor{}
	g.solved = false
	g.solvedIn = 0
	g.message = ""
	g.board = newBoard(g.cfg.Attempts, g.cfg.Letters)
	g.keys = newKeyMap(g.cfg.Alphabet)
}

// SetTileLetter writes letter into the addressed tile without touching its
// status. Pass 0 to clear the tile.
func (g *Game) SetTileLetter(attempt, tile int, letter rune) error {
	if attempt < 0 || attempt >= g.cfg.Attempts || tile < 0 || tile >= g.cfg.Letters {
		return fmt.Errorf("%w: attempt %d tile %d", ErrOutOfBounds, attempt, tile)
	}
	g.board[attempt][tile].Letter = letter
	return nil
}

// AdvanceCursorForward moves to the next tile. It stops at Letters, the
// "row full" position.
func (g *Game) AdvanceCursorForward() {
	if g.cursor.Tile < g.cfg.Letters {
		g.cursor.Tile++
	}
}

// AdvanceCursorBackward moves to the previous tile. It never leaves the
// current row.
func (g *Game) AdvanceCursorBackward() {
	if g.cursor.Tile > 0 {
		g.cursor.Tile--
	}
}

// AdvanceAttempt moves to the start of the next row.
func (g *Game) AdvanceAttempt() {
	if g.cursor.Attempt < g.cfg.Attempts {
		g.cursor.Attempt++
	}
	g.cursor.Tile = 0
}

// AddLetter writes letter at the cursor and steps forward.
func (g *Game) AddLetter(letter rune) error {
	if g.Over() {
		return ErrGameOver
	}
	if g.cursor.Tile >= g.cfg.Letters {
		return fmt.Errorf("%w: row %d is full", ErrOutOfBounds, g.cursor.Attempt)
	}
	if err := g.SetTileLetter(g.cursor.Attempt, g.cursor.Tile, letter); err != nil {
		return err
	}
	g.AdvanceCursorForward()
	return nil
}

// DeleteLetter steps back and clears that tile. At the start of a row it
// clears the first tile, which is already empty.
func (g *Game) DeleteLetter() error {
	if g.Over() {
		return ErrGameOver
	}
	g.AdvanceCursorBackward()
	return g.SetTileLetter(g.cursor.Attempt, g.cursor.Tile, 0)
}

// Submit scores the active row.
//
// Order of effects:
//  1. classify every tile and raise the keyboard map,
//  2. mark the game solved and compose the win message on an exact match,
//  3. move the cursor to the next row,
//  4. hand the word to the Notifier.
func (g *Game) Submit() (Result, error) {
	if g.Over() {
		return Result{}, ErrGameOver
	}
	if g.cursor.Tile != g.cfg.Letters {
		return Result{}, fmt.Errorf("%w: %d of %d letters", ErrRowIncomplete, g.cursor.Tile, g.cfg.Letters)
	}

	attempt := g.cursor.Attempt
	row := g.board[attempt]
	word := row.Word()

	statuses := Classify(word, g.cfg.Word, g.cfg.Scoring)
	for i, s := range statuses {
		row[i].Status = s
		g.keys.Mark(row[i].Letter, s)
	}

	if word == g.cfg.Word {
		g.solved = true
		if g.solvedIn == 0 {
			g.solvedIn = attempt + 1
		}
		g.message = winMessage(attempt + 1)
	}

	g.AdvanceAttempt()
	g.notify(attempt, word)

	return Result{
		Attempt:  attempt,
		Word:     word,
		Statuses: statuses,
		Solved:   g.solved,
	}, nil
}

// notify calls the Notifier and absorbs any panic; the submission is already
// committed.
func (g *Game) notify(attempt int, word string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int("attempt", attempt).Str("gameId", g.id).Msg("notifier failed")
		}
	}()
	g.notifier.NotifySubmission(attempt, word)
}

func winMessage(attempts int) string {
	noun := "attempt"
	if attempts > 1 {
		noun = "attempts"
	}
	return fmt.Sprintf("Congratulations! You solved the word in %d %s", attempts, noun)
}

// Over reports whether every row has been used. Only Reset leaves this state.
func (g *Game) Over() bool {
	return g.cursor.Attempt >= g.cfg.Attempts
}

// Finished reports whether the round has a result: solved or out of rows.
// Play may continue after a win; this is for display only.
func (g *Game) Finished() bool { return g.solved || g.Over() }

// Solved reports whether the target word was guessed.
func (g *Game) Solved() bool { return g.solved }

// Message is the player-facing status line ("" until the game is won).
func (g *Game) Message() string { return g.message }

// Cursor returns the current cursor.
func (g *Game) Cursor() Cursor { return g.cursor }

// ID is regenerated on every Reset.
func (g *Game) ID() string { return g.id }

// Round counts resets, starting at 1 for a new game.
func (g *Game) Round() int { return g.round }

// Config returns the game's configuration.
func (g *Game) Config() Config { return g.cfg }

// Board returns a copy of the grid.
func (g *Game) Board() Board { return g.board.Clone() }

// KeyMap returns a copy of the keyboard feedback map.
func (g *Game) KeyMap() KeyMap { return g.keys.Clone() }
