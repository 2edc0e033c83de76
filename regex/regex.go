// Package regex adapts a regular expression engine to operate on character
// indices rather than byte offsets, so match locations line up with the
// character-indexed text sources the address evaluator and execution engine
// consume.
//
// It uses Go's standard regexp package as the primary engine: it gives
// capture groups and correct Unicode handling, which a prefilter-only engine
// like coregex does not yet provide (see DESIGN.md, "Regex engine").
package regex

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/coregx/coregex"
)

// Debug enables compile tracing, mirroring re1's Debug toggle.
var Debug = false

func debugf(f string, args ...interface{}) {
	if Debug {
		fmt.Printf(f, args...)
	}
}

// CharIter is a bounded, lazy sequence of (absolute char index, rune) pairs,
// the capability address/regex evaluation consumes from a CharSource.
type CharIter interface {
	// Next returns the next character and its absolute index, or ok=false
	// when the iterator is exhausted.
	Next() (idx int, ch rune, ok bool)
}

// Regex is a compiled pattern. Match locations it returns are always
// character indices, never byte offsets.
type Regex struct {
	source string
	re     *regexp.Regexp

	// fast, opportunistic boolean matcher; nil if coregex rejected the
	// pattern (it does not support the full regexp/syntax construct set).
	fast *coregex.Regex
}

// Compile parses a pattern into a Regex. The pattern syntax is Go's
// regexp/syntax (Perl-like), as accepted by stdlib regexp; a pattern that
// coregex rejects still compiles, just without the fast path.
func Compile(pattern string) (*Regex, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("regex: %w", err)
	}
	r := &Regex{source: pattern, re: re}
	if fast, ferr := coregex.Compile(pattern); ferr == nil {
		r.fast = fast
	} else {
		debugf("regex: coregex fast path unavailable for %q: %v\n", pattern, ferr)
	}
	return r, nil
}

// String returns the source pattern text.
func (r *Regex) String() string { return r.source }

// Clone returns a Regex compiled from the same source, for use by
// independent concurrent scans (Group branches clone their regexes on
// entry so branches do not share scan state).
func (r *Regex) Clone() *Regex {
	clone, err := Compile(r.source)
	if err != nil {
		// r itself compiled, so source is valid; this cannot fail.
		panic(err)
	}
	return clone
}

// collect materializes a CharIter into its text and a parallel table
// mapping byte offset -> char index, so stdlib regexp's byte-offset match
// results can be translated back to char indices.
func collect(it CharIter) (text string, byteToChar []int) {
	var b []byte
	var buf [4]byte
	for {
		idx, ch, ok := it.Next()
		if !ok {
			break
		}
		n := encodeRune(buf[:], ch)
		for i := 0; i < n; i++ {
			byteToChar = append(byteToChar, idx)
		}
		b = append(b, buf[:n]...)
	}
	byteToChar = append(byteToChar, -1) // sentinel: one past the last char
	return string(b), byteToChar
}

func encodeRune(buf []byte, r rune) int {
	return copy(buf, string(r))
}

// advanceOneChar returns the byte offset one character past pos in text, so
// a zero-length match advances the search cursor by a char, not a byte
// (multi-byte runes like "│", U+2502, are 3 bytes wide).
func advanceOneChar(text string, pos int) int {
	if pos >= len(text) {
		return pos + 1
	}
	_, size := utf8.DecodeRuneInString(text[pos:])
	if size == 0 {
		size = 1
	}
	return pos + size
}

// charIdxAt maps a byte offset into the materialized text back to the
// absolute character index it corresponds to. off == len(text) maps to
// "one past the last collected character".
func charIdxAt(byteToChar []int, off, base int) int {
	if off < 0 || off >= len(byteToChar) {
		return base + off // best-effort: callers only pass in-range offsets
	}
	if byteToChar[off] == -1 {
		// end-of-text sentinel: the char index one past the last rune.
		for i := off - 1; i >= 0; i-- {
			if byteToChar[i] != -1 {
				return byteToChar[i] + 1
			}
		}
		return base
	}
	return byteToChar[off]
}

// Match finds the first match of r scanning forward through it, returning
// nil if there is none.
func (r *Regex) Match(it CharIter) *Match {
	text, byteToChar := collect(it)
	loc := r.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	return newMatch(loc, byteToChar, text, r)
}

// MatchLast finds the last (rightmost) match of r scanning backward
// through it. it is expected to have been produced by a reverse iterator
// (e.g. CharSource.RevIterBetween); MatchLast un-reverses the collected
// text and then scans forward repeatedly, keeping the right-most match, an
// approach equivalent to a true reverse scan for the disjoint matches the
// address evaluator needs (see DESIGN.md, "Regex engine").
func (r *Regex) MatchLast(it CharIter) *Match {
	text, byteToChar := collectReverse(it)
	var last *Match
	searchFrom := 0
	for searchFrom <= len(text) {
		loc := r.re.FindStringSubmatchIndex(text[searchFrom:])
		if loc == nil {
			break
		}
		shifted := make([]int, len(loc))
		for i, v := range loc {
			if v < 0 {
				shifted[i] = -1
			} else {
				shifted[i] = v + searchFrom
			}
		}
		last = newMatch(shifted, byteToChar, text, r)
		// advance past the start of this match to find a later one;
		// guarantee progress on zero-length matches by one character, not
		// one byte.
		if shifted[1] > searchFrom {
			searchFrom = advanceOneChar(text, shifted[0])
		} else {
			searchFrom = advanceOneChar(text, searchFrom)
		}
	}
	return last
}

// Matches collects every non-overlapping forward match of r in it, in
// order. Used by LoopMatches (x/re/), which must pre-collect all matches
// on the pre-edit text before any are applied. A non-empty match that runs
// to the end of the text ends the scan, so no empty match is reported
// after it at the very end.
func (r *Regex) Matches(it CharIter) []*Match {
	text, byteToChar := collect(it)
	var out []*Match
	pos := 0
	for pos <= len(text) {
		loc := r.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		shifted := make([]int, len(loc))
		for i, v := range loc {
			if v < 0 {
				shifted[i] = -1
			} else {
				shifted[i] = v + pos
			}
		}
		out = append(out, newMatch(shifted, byteToChar, text, r))
		if shifted[1] > pos {
			pos = shifted[1]
			if pos == len(text) {
				break
			}
		} else {
			pos = advanceOneChar(text, pos)
		}
	}
	return out
}

// Contains reports whether r matches anywhere in it, using the coregex
// fast path when available and falling back to the primary matcher
// otherwise. No capture groups are needed for this check (g/re/, v/re/).
func (r *Regex) Contains(it CharIter) bool {
	text, _ := collect(it)
	if r.fast != nil {
		return r.fast.MatchString(text)
	}
	return r.re.MatchString(text)
}
