// internal/game/classify.go
//
// Guess scoring.
// Responsibilities:
//   - Positional: wrong/missed pass, then matched pass overriding it.
//   - Counted: duplicate letters limited by occurrences in the target.

package game

import "strings"

// Classify scores guess against target and returns one status per position.
// Both words must already be lowercase and of equal rune length.
func Classify(guess, target string, mode Scoring) []TileStatus {
	if mode == ScoringCounted {
		return classifyCounted([]rune(guess), []rune(target))
	}
	return classifyPositional([]rune(guess), []rune(target))
}

// classifyPositional runs the two passes in order:
//
// Pass 1: every tile is missed if the target contains its letter anywhere,
// otherwise wrong.
//
// Pass 2: tiles whose letter sits at the same position in the target become
// matched, overriding pass 1.
//
// Repeated guess letters are judged independently, so two copies of a letter
// that appears once in the target are both marked missed.
func classifyPositional(guess, target []rune) []TileStatus {
	res := make([]TileStatus, len(guess))
	t := string(target)
	for i, r := range guess {
		if strings.ContainsRune(t, r) {
			res[i] = StatusMissed
		} else {
			res[i] = StatusWrong
		}
	}
	for i, r := range guess {
		if i < len(target) && r == target[i] {
			res[i] = StatusMatched
		}
	}
	return res
}

// classifyCounted is the occurrence-limited variant.
//
// Pass 1: mark exact matches and count the target letters left over.
// Pass 2: a non-matched tile is missed while leftover copies of its letter
// remain, each use consuming one copy; otherwise it is wrong.
func classifyCounted(guess, target []rune) []TileStatus {
	res := make([]TileStatus, len(guess))
	counts := make(map[rune]int, len(target))

	for i, r := range guess {
		if i < len(target) && r == target[i] {
			res[i] = StatusMatched
		} else if i < len(target) {
			counts[target[i]]++
		}
	}

	for i, r := range guess {
		if res[i] == StatusMatched {
			continue
		}
		if counts[r] > 0 {
			res[i] = StatusMissed
			counts[r]--
		} else {
			res[i] = StatusWrong
		}
	}
	return res
}

// allMatched returns true if every status is matched.
func allMatched(st []TileStatus) bool {
	for _, s := range st {
		if s != StatusMatched {
			return false
		}
	}
	return len(st) > 0
}
