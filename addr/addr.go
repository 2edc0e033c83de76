// Package addr implements the address grammar of the command language: the
// AST (AddrBase, SimpleAddr, Addr), its parser, and the evaluator that maps
// an Addr against a CharSource into a concrete dot.
package addr

import (
	"fmt"

	"github.com/biox/ad/dot"
	"github.com/biox/ad/regex"
)

// BaseKind tags the variant of an AddrBase.
type BaseKind int

const (
	Current       BaseKind = iota // .
	CurrentLine                   // -+ / +-
	Bol                           // -
	Eol                           // +
	Bof                           // 0
	Eof                           // $
	Line                          // n (1-based in source, stored 0-based)
	RelativeLine                  // ±n
	Char                          // #n
	RelativeChar                  // ±#n
	LineAndColumn                 // line:col (1-based in source, stored 0-based)
	Regex                         // /re/ or +/re/
	RegexBack                     // -/re/
)

func (k BaseKind) String() string {
	switch k {
	case Current:
		return "Current"
	case CurrentLine:
		return "CurrentLine"
	case Bol:
		return "Bol"
	case Eol:
		return "Eol"
	case Bof:
		return "Bof"
	case Eof:
		return "Eof"
	case Line:
		return "Line"
	case RelativeLine:
		return "RelativeLine"
	case Char:
		return "Char"
	case RelativeChar:
		return "RelativeChar"
	case LineAndColumn:
		return "LineAndColumn"
	case Regex:
		return "Regex"
	case RegexBack:
		return "RegexBack"
	default:
		return fmt.Sprintf("BaseKind(%d)", int(k))
	}
}

// AddrBase is one tagged variant of the address-base grammar. Only the
// fields relevant to Kind are meaningful:
//
//	Line, RelativeLine, Char, RelativeChar, LineAndColumn -> N (and Col)
//	Regex, RegexBack                                      -> Re
type AddrBase struct {
	Kind BaseKind
	N    int // line/char number, already 0-based where the grammar says so
	Col  int // LineAndColumn's column, 0-based
	Re   *regex.Regex
}

// isValidSuffix reports whether b may appear as a SimpleAddr suffix. Per
// spec.md 3: only Bol, Eol, CurrentLine, RelativeLine, RelativeChar, Regex,
// RegexBack are valid suffixes.
func (b AddrBase) isValidSuffix() bool {
	switch b.Kind {
	case Bol, Eol, CurrentLine, RelativeLine, RelativeChar, Regex, RegexBack:
		return true
	default:
		return false
	}
}

// SimpleAddr is a base address followed by zero or more valid suffixes,
// each evaluated against the dot its predecessor produced.
type SimpleAddr struct {
	Base     AddrBase
	Suffixes []AddrBase
}

// AddrKind tags the variant of an Addr.
type AddrKind int

const (
	ExplicitKind AddrKind = iota
	SimpleKind
	CompoundKind
)

// Addr is a full address expression: either an internally-synthesized
// literal dot, a single SimpleAddr, or a compound a,b address.
type Addr struct {
	Kind     AddrKind
	Dot      dot.Dot    // ExplicitKind
	Simple   SimpleAddr // SimpleKind
	Start    SimpleAddr // CompoundKind
	End      SimpleAddr // CompoundKind
	HasStart bool       // CompoundKind: false means "missing start" (-> Bof)
	HasEnd   bool       // CompoundKind: false means "missing end" (-> Eof)
}

// Explicit builds an Addr that bypasses evaluation entirely, carrying d
// through unchanged apart from the final clamp.
func Explicit(d dot.Dot) Addr { return Addr{Kind: ExplicitKind, Dot: d} }

// Simple wraps a single SimpleAddr as an Addr.
func Simple(s SimpleAddr) Addr { return Addr{Kind: SimpleKind, Simple: s} }

// Compound builds an a,b compound address. hasStart/hasEnd record whether
// the corresponding side was present in the source text (an elided side
// defaults to Bof/Eof at evaluation time, not at parse time, since the
// default depends on nothing parse-time-only).
func Compound(start SimpleAddr, hasStart bool, end SimpleAddr, hasEnd bool) Addr {
	return Addr{Kind: CompoundKind, Start: start, HasStart: hasStart, End: end, HasEnd: hasEnd}
}

// Full returns the Compound(Bof, Eof) address spanning the entire source.
func Full() Addr {
	bof := SimpleAddr{Base: AddrBase{Kind: Bof}}
	eof := SimpleAddr{Base: AddrBase{Kind: Eof}}
	return Compound(bof, true, eof, true)
}
