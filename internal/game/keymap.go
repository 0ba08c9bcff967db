// internal/game/keymap.go
//
// Keyboard feedback map.
// Responsibilities:
//   - One status per alphabet letter, pre-populated, never grown.
//   - Mark only raises a letter (unchecked < wrong < missed < matched).

package game

import (
	"encoding/json"
	"strings"
)

// DefaultAlphabet is the 26-letter lowercase Latin alphabet.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// KeyMap holds the best feedback observed for every alphabet letter in the
// current game. It is pre-populated for the whole alphabet and never grows.
type KeyMap struct {
	alphabet []rune
	statuses []TileStatus
}

// newKeyMap returns a map with every letter of alphabet set to unchecked.
func newKeyMap(alphabet string) KeyMap {
	letters := []rune(alphabet)
	st := make([]TileStatus, len(letters))
	for i := range st {
		st[i] = StatusUnchecked
	}
	return KeyMap{alphabet: letters, statuses: st}
}

func (k KeyMap) index(r rune) int {
	for i, a := range k.alphabet {
		if a == r {
			return i
		}
	}
	return -1
}

// Get reports the status for r. ok is false when r is not in the alphabet.
func (k KeyMap) Get(r rune) (status TileStatus, ok bool) {
	i := k.index(r)
	if i < 0 {
		return StatusUnchecked, false
	}
	return k.statuses[i], true
}

// Mark records status for r if it ranks above what is already stored.
// A matched letter is therefore never downgraded by a later attempt.
// Letters outside the alphabet are ignored. Returns true if the map changed.
func (k KeyMap) Mark(r rune, status TileStatus) bool {
	i := k.index(r)
	if i < 0 {
		return false
	}
	if status.rank() <= k.statuses[i].rank() {
		return false
	}
	k.statuses[i] = status
	return true
}

// Letters returns the alphabet in display order.
func (k KeyMap) Letters() []rune {
	return append([]rune(nil), k.alphabet...)
}

// Clone returns an independent copy.
func (k KeyMap) Clone() KeyMap {
	return KeyMap{
		alphabet: append([]rune(nil), k.alphabet...),
		statuses: append([]TileStatus(nil), k.statuses...),
	}
}

// MarshalJSON renders the map as {"a":"unchecked",...}.
func (k KeyMap) MarshalJSON() ([]byte, error) {
	m := make(map[string]TileStatus, len(k.alphabet))
	for i, r := range k.alphabet {
		m[string(r)] = k.statuses[i]
	}
	return json.Marshal(m)
}

// String is a compact debug form, e.g. "a:unchecked b:wrong".
func (k KeyMap) String() string {
	var sb strings.Builder
	for i, r := range k.alphabet {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		sb.WriteByte(':')
		sb.WriteString(string(k.statuses[i]))
	}
	return sb.String()
}
