package prefilter

import (
	"unicode/utf8"
)

// Match is a half-open byte range [Start, End) of the haystack
type Match struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Confirmer reports the end of the match starting at at, or -1.
// A forward, anchored *dfa.DFA is a Confirmer.
type Confirmer interface {
	MatchAt(haystack []byte, at int) int
}

// FindAll returns up to n non-overlapping matches of c in haystack, scanning
// left to right; n < 0 means all. Each candidate start is confirmed with
// c.MatchAt.
//
// An empty match abutting the previous match is skipped.
//
// When f is non-nil it is wrapped in a Tracker and used to jump between
// candidates; once the tracker retires it, or when f is nil, every code-point
// boundary is tried.
func FindAll(c Confirmer, f Finder, haystack []byte, n int) []Match {
	var tracker *Tracker
	if f != nil {
		tracker = NewTracker(f)
	}

	var out []Match
	prevEnd := -1
	for at := 0; at <= len(haystack) && (n < 0 || len(out) < n); {
		pos := at
		if tracker != nil && tracker.IsActive() {
			if pos = tracker.Find(haystack, at); pos < 0 {
				break
			}
		}

		end := c.MatchAt(haystack, pos)
		if end < 0 || (end == pos && pos == prevEnd) {
			at = pos + runeLen(haystack, pos)
			continue
		}
		if tracker != nil {
			tracker.ConfirmMatch()
		}
		out = append(out, Match{Start: pos, End: end})
		prevEnd = end
		if end > pos {
			at = end
		} else {
			at = pos + runeLen(haystack, pos)
		}
	}
	return out
}

// runeLen returns the width of the code point at i, or 1 at end of input.
func runeLen(haystack []byte, i int) int {
	if i >= len(haystack) {
		return 1
	}
	_, size := utf8.DecodeRune(haystack[i:])
	return size
}
