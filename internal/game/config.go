// internal/game/config.go
//
// Construction-time game settings.
// Responsibilities:
//   - Defaults (6 attempts, 5 letters, a..z, positional scoring).
//   - Validate: dimensions, alphabet, scoring mode, target word.

package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	defaultRows = 6
	defaultCols = 5
)

// Scoring selects how repeated letters are classified.
type Scoring string

const (
	// ScoringPositional checks every position independently against
	// "does the target contain this letter anywhere".
	ScoringPositional Scoring = "positional"
	// ScoringCounted limits missed marks to the number of unmatched
	// occurrences left in the target.
	ScoringCounted Scoring = "counted"
)

// Config is fixed for the lifetime of a game.
type Config struct {
	Word     string  // target word, lowercase, exactly Letters long
	Attempts int     // rows on the board
	Letters  int     // tiles per row
	Alphabet string  // accepted symbols, in keyboard order
	Scoring  Scoring // duplicate-letter policy
}

// ErrConfig wraps every configuration rejection.
var ErrConfig = errors.New("invalid game config")

// WithDefaults fills zero fields with the standard 6x5 Latin setup.
func (c Config) WithDefaults() Config {
	if c.Attempts == 0 {
		c.Attempts = defaultRows
	}
	if c.Letters == 0 {
		c.Letters = defaultCols
	}
	if c.Alphabet == "" {
		c.Alphabet = DefaultAlphabet
	}
	if c.Scoring == "" {
		c.Scoring = ScoringPositional
	}
	return c
}

// Validate rejects configurations no game can be built from.
func (c Config) Validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("%w: attempts must be at least 1, got %d", ErrConfig, c.Attempts)
	}
	if c.Letters < 1 {
		return fmt.Errorf("%w: letters must be at least 1, got %d", ErrConfig, c.Letters)
	}
	if c.Alphabet == "" {
		return fmt.Errorf("%w: alphabet is empty", ErrConfig)
	}
	seen := make(map[rune]struct{}, len(c.Alphabet))
	for _, r := range c.Alphabet {
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: alphabet repeats %q", ErrConfig, r)
		}
		seen[r] = struct{}{}
	}
	switch c.Scoring {
	case ScoringPositional, ScoringCounted:
	default:
		return fmt.Errorf("%w: unknown scoring %q", ErrConfig, c.Scoring)
	}
	if c.Word != strings.ToLower(c.Word) {
		return fmt.Errorf("%w: word %q must be lowercase", ErrConfig, c.Word)
	}
	if n := utf8.RuneCountInString(c.Word); n != c.Letters {
		return fmt.Errorf("%w: word %q has %d letters, want %d", ErrConfig, c.Word, n, c.Letters)
	}
	for _, r := range c.Word {
		if _, ok := seen[r]; !ok {
			return fmt.Errorf("%w: word %q uses %q outside the alphabet", ErrConfig, c.Word, r)
		}
	}
	return nil
}
