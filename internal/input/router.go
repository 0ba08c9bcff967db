// Package input turns raw key presses into game moves.
//
// Classification is a pure function of the event, the cursor tile and the
// game's dimensions; Router applies the resulting Action to a *game.Game.
package input

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
)

// Named keys.
const (
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
)

// Latin letter key codes, A..Z.
const (
	codeA = 65
	codeZ = 90
)

// Event is a normalized key press. Code is the legacy key code; hosts that
// do not have one leave it 0 and the letter is taken from Key.
type Event struct {
	Key  string
	Code int
}

// Kind enumerates what an event does.
type Kind int

const (
	Ignored Kind = iota
	Letter
	Delete
	Submit
	Reset
)

func (k Kind) String() string {
	switch k {
	case Letter:
		return "letter"
	case Delete:
		return "delete"
	case Submit:
		return "submit"
	case Reset:
		return "reset"
	default:
		return "ignored"
	}
}

// Action is a classified event. Letter is set for Kind == Letter.
type Action struct {
	Kind   Kind
	Letter rune
}

// State is what classification needs to know about the game.
type State struct {
	Tile     int    // cursor tile
	Letters  int    // tiles per row
	Alphabet string // accepted letters
	Over     bool   // every row used
}

// Classify applies the routing rules in priority order:
//
//  1. Backspace deletes.
//  2. Escape resets, even after the game is over.
//  3. Enter submits, but only on a full row.
//  4. A letter in the alphabet is entered while the row has room.
//  5. Anything else is ignored.
//
// Once the game is over everything except Escape is ignored.
func Classify(ev Event, st State) Action {
	switch ev.Key {
	case KeyEscape:
		return Action{Kind: Reset}
	case KeyBackspace:
		if st.Over {
			return Action{}
		}
		return Action{Kind: Delete}
	case KeyEnter:
		if st.Over || st.Tile != st.Letters {
			return Action{}
		}
		return Action{Kind: Submit}
	}

	r, ok := ev.letter()
	if !ok || st.Over || st.Tile >= st.Letters || !strings.ContainsRune(st.Alphabet, r) {
		return Action{}
	}
	return Action{Kind: Letter, Letter: r}
}

// letter extracts the lowercase letter carried by the event.
func (ev Event) letter() (rune, bool) {
	if ev.Code != 0 && (ev.Code < codeA || ev.Code > codeZ) {
		return 0, false
	}
	if utf8.RuneCountInString(ev.Key) != 1 {
		if ev.Code == 0 {
			return 0, false
		}
		return unicode.ToLower(rune(ev.Code)), true
	}
	r, _ := utf8.DecodeRuneInString(ev.Key)
	if !unicode.IsLetter(r) {
		return 0, false
	}
	return unicode.ToLower(r), true
}

// Router feeds classified events into a game.
type Router struct {
	g *game.Game
}

// NewRouter binds a router to g.
func NewRouter(g *game.Game) *Router {
	return &Router{g: g}
}

// Game returns the routed game.
func (rt *Router) Game() *game.Game { return rt.g }

// Handle classifies ev and applies it. The returned Action is what actually
// happened; a move the game refuses comes back as Ignored.
func (rt *Router) Handle(ev Event) Action {
	cfg := rt.g.Config()
	act := Classify(ev, State{
		Tile:     rt.g.Cursor().Tile,
		Letters:  cfg.Letters,
		Alphabet: cfg.Alphabet,
		Over:     rt.g.Over(),
	})

	var err error
	switch act.Kind {
	case Letter:
		err = rt.g.AddLetter(act.Letter)
	case Delete:
		err = rt.g.DeleteLetter()
	case Submit:
		var res game.Result
		res, err = rt.g.Submit()
		if err == nil {
			log.Debug().Str("gameId", rt.g.ID()).Int("attempt", res.Attempt).Bool("solved", res.Solved).Msg("attempt submitted")
		}
	case Reset:
		rt.g.Reset()
		log.Debug().Str("gameId", rt.g.ID()).Int("round", rt.g.Round()).Msg("game reset")
	}
	if err != nil {
		log.Warn().Err(err).Str("key", ev.Key).Stringer("action", act.Kind).Msg("move rejected")
		return Action{}
	}
	return act
}
