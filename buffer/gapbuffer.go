// Package buffer provides the two reference C7 Edit implementations named
// in spec.md 4.7: a raw GapBuffer (minimal behavior, CurrentDot returns
// empty) and a Buffer that layers a selection and an undo log on top.
package buffer

import (
	"strings"

	"github.com/biox/ad/dot"
	"github.com/biox/ad/regex"
)

// GapBuffer is a classic gap buffer over runes: a single contiguous slice
// with an unused "gap" region that slides to wherever the next edit
// happens, so a run of nearby edits is O(1) amortized rather than O(n)
// each.
type GapBuffer struct {
	buf              []rune
	gapStart, gapEnd int // physical indices; buf[gapStart:gapEnd] is unused
}

// NewGapBuffer returns a GapBuffer holding the runes of s, with no gap
// reserved (the first edit allocates one).
func NewGapBuffer(s string) *GapBuffer {
	data := []rune(s)
	return &GapBuffer{buf: data, gapStart: len(data), gapEnd: len(data)}
}

// LenChars is the number of characters currently in the buffer, excluding
// the gap.
func (g *GapBuffer) LenChars() int { return len(g.buf) - (g.gapEnd - g.gapStart) }

func (g *GapBuffer) charAt(i int) rune {
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[i+(g.gapEnd-g.gapStart)]
}

// moveGapTo slides the gap so that gapStart lands at the physical index
// corresponding to logical position pos.
func (g *GapBuffer) moveGapTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if n := g.LenChars(); pos > n {
		pos = n
	}
	switch {
	case pos < g.gapStart:
		n := g.gapStart - pos
		copy(g.buf[g.gapEnd-n:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapStart -= n
		g.gapEnd -= n
	case pos > g.gapStart:
		n := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+n], g.buf[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// growGap enlarges the gap to hold at least min more runes.
func (g *GapBuffer) growGap(min int) {
	extra := min
	if extra < 64 {
		extra = 64
	}
	newLen := len(g.buf) + extra
	nb := make([]rune, newLen)
	copy(nb, g.buf[:g.gapStart])
	tail := len(g.buf) - g.gapEnd
	copy(nb[newLen-tail:], g.buf[g.gapEnd:])
	g.buf = nb
	g.gapEnd = newLen - tail
}

// Insert inserts s at logical character index idx.
func (g *GapBuffer) Insert(idx int, s string) {
	if s == "" {
		return
	}
	runes := []rune(s)
	g.moveGapTo(idx)
	if g.gapEnd-g.gapStart < len(runes) {
		g.growGap(len(runes))
	}
	copy(g.buf[g.gapStart:], runes)
	g.gapStart += len(runes)
}

// Remove deletes the characters in [from, to).
func (g *GapBuffer) Remove(from, to int) {
	if to <= from {
		return
	}
	g.moveGapTo(from)
	g.gapEnd += to - from
}

// Substr returns the characters in [from, to) as a string.
func (g *GapBuffer) Substr(from, to int) string {
	if to <= from {
		return ""
	}
	var b strings.Builder
	b.Grow(to - from)
	for i := from; i < to; i++ {
		b.WriteRune(g.charAt(i))
	}
	return b.String()
}

// String returns the buffer's full text.
func (g *GapBuffer) String() string { return g.Substr(0, g.LenChars()) }

func (g *GapBuffer) LineToChar(line int) (int, bool) {
	if line < 0 {
		return 0, false
	}
	if line == 0 {
		return 0, true
	}
	n := g.LenChars()
	count := 0
	for i := 0; i < n; i++ {
		if g.charAt(i) == '\n' {
			count++
			if count == line {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func (g *GapBuffer) CharToLine(char int) int {
	n := g.LenChars()
	if char > n {
		char = n
	}
	line := 0
	for i := 0; i < char; i++ {
		if g.charAt(i) == '\n' {
			line++
		}
	}
	return line
}

func (g *GapBuffer) CharToLineStart(char int) int {
	for i := char; i > 0; i-- {
		if g.charAt(i-1) == '\n' {
			return i
		}
	}
	return 0
}

func (g *GapBuffer) CharToLineEnd(char int) int {
	n := g.LenChars()
	for i := char; i < n; i++ {
		if g.charAt(i) == '\n' {
			return i
		}
	}
	return n
}

func (g *GapBuffer) IterBetween(from, to int) regex.CharIter {
	return &gapFwdIter{g: g, pos: from, end: to}
}

func (g *GapBuffer) RevIterBetween(from, to int) regex.CharIter {
	return &gapRevIter{g: g, pos: from - 1, end: to}
}

// CurrentDot on the raw buffer always returns the empty dot at 0: a plain
// GapBuffer has no concept of a selection (spec.md 4.7).
func (g *GapBuffer) CurrentDot() dot.Dot { return dot.Dot{} }

// Submatch collects the characters of submatch n of m directly from the
// buffer.
func (g *GapBuffer) Submatch(m *regex.Match, n int) (string, bool) {
	from, to, ok := m.SubmatchLoc(n)
	if !ok {
		return "", false
	}
	return g.Substr(from, to), true
}

// BeginEditTransaction/EndEditTransaction are no-ops on the raw buffer.
func (g *GapBuffer) BeginEditTransaction() {}
func (g *GapBuffer) EndEditTransaction()   {}

type gapFwdIter struct {
	g        *GapBuffer
	pos, end int
}

func (it *gapFwdIter) Next() (int, rune, bool) {
	if it.pos >= it.end || it.pos >= it.g.LenChars() {
		return 0, 0, false
	}
	idx := it.pos
	ch := it.g.charAt(idx)
	it.pos++
	return idx, ch, true
}

type gapRevIter struct {
	g        *GapBuffer
	pos, end int
}

func (it *gapRevIter) Next() (int, rune, bool) {
	if it.pos < it.end || it.pos < 0 {
		return 0, 0, false
	}
	idx := it.pos
	ch := it.g.charAt(idx)
	it.pos--
	return idx, ch, true
}
