package edit

import (
	"io"

	"github.com/biox/ad/addr"
	"github.com/biox/ad/dot"
	"github.com/biox/ad/regex"
)

// Edit is the mutation capability (C7) the execution engine drives: a
// CharSource (for address/regex evaluation) plus insert/remove and
// transaction-boundary signaling. Two concrete implementations are
// expected to coexist (package buffer's GapBuffer and Buffer); the engine
// never depends on which one it holds.
type Edit interface {
	addr.CharSource

	// Submatch collects the characters of submatch n of m, or ok=false if
	// n is out of range or the group did not participate.
	Submatch(m *regex.Match, n int) (string, bool)

	Insert(idx int, s string)
	Remove(from, to int)

	BeginEditTransaction()
	EndEditTransaction()
}

// Execute runs the program against ed: resolves the initial address,
// then, inside one begin/end transaction pair, recursively drives the
// expression pipeline (C6). Output written by Print goes to out. The
// returned dot is clamped into ed's current bounds.
func (p *Program) Execute(ed Edit, fname string, out io.Writer) (dot.Dot, error) {
	initial := addr.MapAddr(ed, p.InitialDot)

	ed.BeginEditTransaction()
	result, err := runExprs(ed, initial, p.Exprs, fname, out)
	ed.EndEditTransaction()
	if err != nil {
		return dot.Dot{}, err
	}
	return result.Clamp(ed.LenChars()), nil
}

// runExprs drives exprs (a program's own pipeline, or a Group branch's)
// starting from initial, without touching transaction boundaries — those
// are the exclusive responsibility of the top-level Execute call.
func runExprs(ed Edit, initial dot.Dot, exprs []Expr, fname string, out io.Writer) (dot.Dot, error) {
	if len(exprs) == 0 {
		return initial, nil
	}
	m := regex.Synthetic(initial.From, initial.To)
	return step(ed, m, exprs, 0, fname, out)
}

// step dispatches on exprs[pc] (spec.md 4.6).
func step(ed Edit, m *regex.Match, exprs []Expr, pc int, fname string, out io.Writer) (dot.Dot, error) {
	e := exprs[pc]
	cur := dot.Dot{From: m.From(), To: m.To()}

	switch e.Kind {
	case Group:
		result := cur
		for _, branch := range e.Branches {
			r, err := runExprs(ed, result, cloneExprs(branch), fname, out)
			if err != nil {
				return dot.Dot{}, err
			}
			result = r
		}
		return result, nil

	case LoopMatches:
		matches := e.Re.Matches(ed.IterBetween(m.From(), m.To()))
		return applyMatches(ed, matches, m, exprs, pc+1, fname, out)

	case LoopBetweenMatches:
		gaps := betweenMatches(e.Re.Matches(ed.IterBetween(m.From(), m.To())), m)
		return applyMatches(ed, gaps, m, exprs, pc+1, fname, out)

	case IfContains:
		if e.Re.Contains(ed.IterBetween(m.From(), m.To())) {
			return step(ed, m, exprs, pc+1, fname, out)
		}
		return cur, nil

	case IfNotContains:
		if !e.Re.Contains(ed.IterBetween(m.From(), m.To())) {
			return step(ed, m, exprs, pc+1, fname, out)
		}
		return cur, nil

	case Print:
		s, err := expandTemplate(e.Template, m, ed, fname)
		if err != nil {
			return dot.Dot{}, err
		}
		if _, err := io.WriteString(out, s); err != nil {
			panic(err) // I/O failure on a caller-vouched sink: impossible state
		}
		return cur, nil

	case Insert:
		s, err := expandTemplate(e.Template, m, ed, fname)
		if err != nil {
			return dot.Dot{}, err
		}
		ed.Insert(m.From(), s)
		return dot.Dot{From: m.From(), To: m.To() + charCount(s)}, nil

	case Append:
		s, err := expandTemplate(e.Template, m, ed, fname)
		if err != nil {
			return dot.Dot{}, err
		}
		ed.Insert(m.To(), s)
		return dot.Dot{From: m.From(), To: m.To() + charCount(s)}, nil

	case Change:
		s, err := expandTemplate(e.Template, m, ed, fname)
		if err != nil {
			return dot.Dot{}, err
		}
		ed.Remove(m.From(), m.To())
		ed.Insert(m.From(), s)
		return dot.Dot{From: m.From(), To: m.From() + charCount(s)}, nil

	case Delete:
		ed.Remove(m.From(), m.To())
		return dot.Cursor(m.From()), nil

	case Sub:
		mm := e.Re.Match(ed.IterBetween(m.From(), m.To()))
		if mm == nil {
			return cur, nil
		}
		s, err := expandTemplate(e.Template, mm, ed, fname)
		if err != nil {
			return dot.Dot{}, err
		}
		ed.Remove(mm.From(), mm.To())
		ed.Insert(mm.From(), s)
		return dot.Dot{From: m.From(), To: m.To() - mm.Len() + charCount(s)}, nil

	default:
		return cur, nil
	}
}

// betweenMatches emits a synthetic match for each gap between successive
// matches of re inside outer, including the gap before the first match
// (skipped when empty) and the gap after the last match, which is always
// emitted even when empty: a trailing action (Insert/Append/Change) must
// still land once at the end of the range (spec.md 4.6, "y/re/"; see
// DESIGN.md for the worked "y insert"/"y append"/"y change" trace this
// pins).
func betweenMatches(matches []*regex.Match, outer *regex.Match) []*regex.Match {
	var gaps []*regex.Match
	prev := outer.From()
	for _, mm := range matches {
		if mm.From() > prev {
			gaps = append(gaps, regex.Synthetic(prev, mm.From()))
		}
		prev = mm.To()
	}
	gaps = append(gaps, regex.Synthetic(prev, outer.To()))
	return gaps
}

// applyMatches iterates pre-collected matches in order, re-anchoring each
// by the signed offset accumulated from earlier iterations' edits before
// running step on it (spec.md 4.6, "Why pre-collect matches?").
func applyMatches(ed Edit, matches []*regex.Match, outer *regex.Match, exprs []Expr, pc int, fname string, out io.Writer) (dot.Dot, error) {
	if len(matches) == 0 {
		return dot.Dot{From: outer.From(), To: outer.To()}, nil
	}

	offset := 0
	var result dot.Dot
	for _, mm := range matches {
		shifted := mm.ApplyOffset(offset)
		before := ed.LenChars()
		r, err := step(ed, shifted, exprs, pc, fname, out)
		if err != nil {
			return dot.Dot{}, err
		}
		after := ed.LenChars()
		offset += after - before
		result = r
	}
	return result, nil
}

func cloneExprs(branch []Expr) []Expr {
	cloned := make([]Expr, len(branch))
	for i, e := range branch {
		cloned[i] = e.clone()
	}
	return cloned
}

func charCount(s string) int { return len([]rune(s)) }
