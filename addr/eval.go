package addr

import (
	"github.com/biox/ad/dot"
	"github.com/biox/ad/regex"
)

// CharSource is the bounded character-iteration capability the address
// evaluator (and, via regex scans, the execution engine) consumes. Failing
// lookups (LineToChar) return ok=false rather than erroring; evaluation
// turns those into an absent dot that clamps to a document boundary.
type CharSource interface {
	LenChars() int
	LineToChar(line int) (int, bool)
	CharToLine(char int) int
	CharToLineStart(char int) int
	CharToLineEnd(char int) int
	IterBetween(from, to int) regex.CharIter
	RevIterBetween(from, to int) regex.CharIter
	CurrentDot() dot.Dot
}

// MapAddr evaluates a against src, producing a concrete dot clamped into
// [0, len_chars(src)]. Explicit dots pass through unchanged apart from the
// clamp.
func MapAddr(src CharSource, a Addr) dot.Dot {
	var d dot.Dot
	switch a.Kind {
	case ExplicitKind:
		d = a.Dot
	case SimpleKind:
		d = mapSimpleAddr(src, a.Simple, src.CurrentDot())
	case CompoundKind:
		d = mapCompoundAddr(src, a)
	}
	return d.Clamp(src.LenChars())
}

func mapCompoundAddr(src CharSource, a Addr) dot.Dot {
	cur := src.CurrentDot()

	start := dot.Cursor(0)
	if a.HasStart {
		start = mapSimpleAddr(src, a.Start, cur)
	}

	end := dot.Cursor(src.LenChars())
	if a.HasEnd {
		end = mapSimpleAddr(src, a.End, cur)
	}

	return dot.Dot{From: start.FirstCur().Idx, To: end.LastCur().Idx}
}

func mapSimpleAddr(src CharSource, sa SimpleAddr, curDot dot.Dot) dot.Dot {
	d := mapAddrBase(src, sa.Base, curDot)
	for _, suf := range sa.Suffixes {
		d = mapAddrBase(src, suf, d)
	}
	return d
}

// absent represents an out-of-range lookup: a cursor one past the end of
// the source, which the caller's final Clamp pulls back to a valid,
// possibly-empty dot at the document boundary (spec.md 7: "Out-of-range
// address lookups ... do not error").
func absent(src CharSource) dot.Dot {
	return dot.Cursor(src.LenChars() + 1)
}

func mapAddrBase(src CharSource, b AddrBase, curDot dot.Dot) dot.Dot {
	switch b.Kind {
	case Current:
		return curDot

	case Bof:
		return dot.Cursor(0)

	case Eof:
		return dot.Cursor(src.LenChars())

	case Bol:
		start := src.CharToLineStart(curDot.FirstCur().Idx)
		return dot.Dot{From: start, To: curDot.To}

	case Eol:
		end := src.CharToLineEnd(curDot.LastCur().Idx)
		return dot.Dot{From: curDot.From, To: end}

	case CurrentLine:
		start := src.CharToLineStart(curDot.FirstCur().Idx)
		end := src.CharToLineEnd(curDot.LastCur().Idx)
		return dot.Dot{From: start, To: end}

	case Line:
		return fullLine(src, b.N)

	case RelativeLine:
		line := src.CharToLine(curDot.ActiveCur().Idx)
		return fullLine(src, line+b.N)

	case Char:
		return dot.Cursor(b.N)

	case RelativeChar:
		return dot.Cursor(curDot.ActiveCur().Idx + b.N)

	case LineAndColumn:
		base, ok := src.LineToChar(b.N)
		if !ok {
			return absent(src)
		}
		return dot.Cursor(base + b.Col)

	case Regex:
		from := curDot.LastCur().Idx
		m := b.Re.Match(src.IterBetween(from, src.LenChars()))
		if m == nil {
			return absent(src)
		}
		return dot.Dot{From: m.From(), To: m.To()}

	case RegexBack:
		from := curDot.FirstCur().Idx
		m := b.Re.MatchLast(src.RevIterBetween(from, 0))
		if m == nil {
			return absent(src)
		}
		return dot.Dot{From: m.From(), To: m.To()}

	default:
		return absent(src)
	}
}

// fullLine resolves the full extent of 0-based line index line: from its
// first character up to its trailing newline (or end of source), excluding
// the newline itself. Returns an absent dot if line is out of range.
func fullLine(src CharSource, line int) dot.Dot {
	start, ok := src.LineToChar(line)
	if !ok {
		return absent(src)
	}
	end := src.CharToLineEnd(start)
	return dot.Dot{From: start, To: end}
}
