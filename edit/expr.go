package edit

import (
	"fmt"

	"github.com/biox/ad/addr"
	"github.com/biox/ad/regex"
)

// ExprKind tags the variant of an Expr.
type ExprKind int

const (
	Group ExprKind = iota
	LoopMatches
	LoopBetweenMatches
	IfContains
	IfNotContains
	Print
	Insert
	Append
	Change
	Sub
	Delete
)

func (k ExprKind) String() string {
	switch k {
	case Group:
		return "Group"
	case LoopMatches:
		return "LoopMatches"
	case LoopBetweenMatches:
		return "LoopBetweenMatches"
	case IfContains:
		return "IfContains"
	case IfNotContains:
		return "IfNotContains"
	case Print:
		return "Print"
	case Insert:
		return "Insert"
	case Append:
		return "Append"
	case Change:
		return "Change"
	case Sub:
		return "Sub"
	case Delete:
		return "Delete"
	default:
		return fmt.Sprintf("ExprKind(%d)", int(k))
	}
}

// Expr is one command in a Program's pipeline. Only the fields relevant to
// Kind are meaningful:
//
//	Group                                   -> Branches
//	LoopMatches, LoopBetweenMatches,
//	  IfContains, IfNotContains, Sub         -> Re
//	Print, Insert, Append, Change, Sub       -> Template
//
// s/re/tpl/g desugars at parse time into two sequential Exprs,
// [LoopMatches(re), Sub(re, tpl)], sharing the same compiled Re (see
// parseSub); Sub itself therefore carries no "global" flag.
type Expr struct {
	Kind     ExprKind
	Re       *regex.Regex
	Template string
	Branches [][]Expr
}

func exprGroup(branches [][]Expr) Expr { return Expr{Kind: Group, Branches: branches} }
func exprLoopMatches(re *regex.Regex) Expr {
	return Expr{Kind: LoopMatches, Re: re}
}
func exprLoopBetween(re *regex.Regex) Expr {
	return Expr{Kind: LoopBetweenMatches, Re: re}
}
func exprIfContains(re *regex.Regex) Expr    { return Expr{Kind: IfContains, Re: re} }
func exprIfNotContains(re *regex.Regex) Expr { return Expr{Kind: IfNotContains, Re: re} }
func exprPrint(tpl string) Expr              { return Expr{Kind: Print, Template: tpl} }
func exprInsert(tpl string) Expr             { return Expr{Kind: Insert, Template: tpl} }
func exprAppend(tpl string) Expr             { return Expr{Kind: Append, Template: tpl} }
func exprChange(tpl string) Expr             { return Expr{Kind: Change, Template: tpl} }
func exprSub(re *regex.Regex, tpl string) Expr {
	return Expr{Kind: Sub, Re: re, Template: tpl}
}
func exprDelete() Expr { return Expr{Kind: Delete} }

// isAction reports whether e is one of the action kinds a Program must end
// in (Group | Insert | Append | Change | Sub | Print | Delete).
func (e Expr) isAction() bool {
	switch e.Kind {
	case Group, Insert, Append, Change, Sub, Print, Delete:
		return true
	default:
		return false
	}
}

// clone returns a copy of e with its own regex compiled fresh, so a Group
// branch does not share scan state with its sibling branches or the
// expression it was copied from (spec.md 9, "Shared regex ownership").
func (e Expr) clone() Expr {
	c := e
	if e.Re != nil {
		c.Re = e.Re.Clone()
	}
	if e.Branches != nil {
		c.Branches = make([][]Expr, len(e.Branches))
		for i, branch := range e.Branches {
			cb := make([]Expr, len(branch))
			for j, ex := range branch {
				cb[j] = ex.clone()
			}
			c.Branches[i] = cb
		}
	}
	return c
}

// Program is a parsed, validated command: an initial address plus a
// pipeline of expressions.
type Program struct {
	InitialDot addr.Addr
	Exprs      []Expr
}
