// Package dot implements the cursor and selection type that addresses and
// commands resolve to: a half-open character range into some text source.
package dot

import "fmt"

// Cur is an absolute character index into a text source. The zero value is
// the start of the source.
type Cur struct {
	Idx int
}

// Dot is the current selection in a buffer: either a single cursor (From ==
// To) or a range of characters [From, To). Both Match and Dot use the same
// exclusive-end convention in this module, so no +1/-1 conversion is needed
// moving between the two; see SPEC_FULL.md, "REPRESENTATION DECISION".
type Dot struct {
	From, To int
}

// Cursor returns the cursor dot at idx.
func Cursor(idx int) Dot { return Dot{From: idx, To: idx} }

// FromCur builds a single-point dot from a Cur.
func FromCur(c Cur) Dot { return Cursor(c.Idx) }

// IsCursor reports whether d is an empty, cursor-only dot.
func (d Dot) IsCursor() bool { return d.From == d.To }

// FirstCur is the cursor anchoring a reverse search: the start of the range.
func (d Dot) FirstCur() Cur { return Cur{Idx: d.From} }

// LastCur is the cursor anchoring a forward search: the end of the range.
func (d Dot) LastCur() Cur { return Cur{Idx: d.To} }

// ActiveCur is the operator-facing cursor: the end of the range for a
// non-empty dot, or the cursor itself.
func (d Dot) ActiveCur() Cur { return d.LastCur() }

// Clamp restricts d's endpoints to [0, max], preserving From <= To.
func (d Dot) Clamp(max int) Dot {
	from, to := d.From, d.To
	if from < 0 {
		from = 0
	}
	if to < 0 {
		to = 0
	}
	if from > max {
		from = max
	}
	if to > max {
		to = max
	}
	if from > to {
		from, to = to, from
	}
	return Dot{From: from, To: to}
}

// Len is the number of characters the range covers.
func (d Dot) Len() int { return d.To - d.From }

// Shift translates both endpoints by delta, used when re-anchoring a dot
// after an edit earlier in the same buffer changed its length.
func (d Dot) Shift(delta int) Dot { return Dot{From: d.From + delta, To: d.To + delta} }

func (d Dot) String() string {
	if d.IsCursor() {
		return fmt.Sprintf("#%d", d.From)
	}
	return fmt.Sprintf("[%d,%d)", d.From, d.To)
}
