package edit

import (
	"strings"

	"github.com/biox/ad/addr"
	"github.com/biox/ad/regex"
)

// ParseProgram parses a full program: an optional leading address (falling
// back to Addr::full() when none is present) followed by a pipeline of
// expressions. See spec.md 4.3.
func ParseProgram(s string) (*Program, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &Error{Kind: EmptyProgram}
	}

	p := addr.NewParser(s)
	start := p.Pos()

	var initial addr.Addr
	a, err := addr.ParseAddr(p)
	switch {
	case err == nil:
		initial = a
	case addr.IsNotAnAddress(err):
		p.SetPos(start)
		initial = addr.Full()
	default:
		return nil, translateAddrErr(err)
	}

	p.SkipSpace()
	var exprs []Expr
	for !p.AtEnd() {
		es, err := parseExpr(p)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, es...)
		p.SkipSpace()
	}

	prog := &Program{InitialDot: initial, Exprs: exprs}
	if err := validate(prog.Exprs); err != nil {
		return nil, err
	}
	return prog, nil
}

// translateAddrErr maps an *addr.ParseError onto the program parser's own
// Error type, so ParseProgram has a single error surface.
func translateAddrErr(err error) *Error {
	pe, ok := err.(*addr.ParseError)
	if !ok {
		return &Error{Kind: UnexpectedCharacter, Err: err}
	}
	e := &Error{Pos: pe.Pos, Rune: pe.Rune, Err: pe}
	switch pe.Kind {
	case addr.InvalidRegex:
		e.Kind = InvalidRegex
	case addr.InvalidSuffix:
		e.Kind = InvalidSuffix
	case addr.UnclosedDelimiter:
		e.Kind = UnclosedDelimiter
	default:
		e.Kind = UnexpectedCharacter
	}
	return e
}

// parseExpr parses one expression, returning either one Expr or, for a
// desugared global substitution, a pair [LoopMatches, Sub].
func parseExpr(p *addr.Parser) ([]Expr, error) {
	p.SkipSpace()
	r, ok := p.Peek()
	if !ok {
		return nil, &Error{Kind: Eof, Pos: p.Pos()}
	}

	switch r {
	case '{':
		p.Next()
		e, err := parseGroup(p)
		if err != nil {
			return nil, err
		}
		return []Expr{e}, nil

	case 'x', 'y', 'g', 'v':
		p.Next()
		re, err := parseCommandRegex(p)
		if err != nil {
			return nil, err
		}
		switch r {
		case 'x':
			return []Expr{exprLoopMatches(re)}, nil
		case 'y':
			return []Expr{exprLoopBetween(re)}, nil
		case 'g':
			return []Expr{exprIfContains(re)}, nil
		default: // 'v'
			return []Expr{exprIfNotContains(re)}, nil
		}

	case 'p', 'i', 'a', 'c':
		p.Next()
		tpl, err := parseCommandTemplate(p)
		if err != nil {
			return nil, err
		}
		switch r {
		case 'p':
			return []Expr{exprPrint(tpl)}, nil
		case 'i':
			return []Expr{exprInsert(tpl)}, nil
		case 'a':
			return []Expr{exprAppend(tpl)}, nil
		default: // 'c'
			return []Expr{exprChange(tpl)}, nil
		}

	case 'd':
		p.Next()
		return []Expr{exprDelete()}, nil

	case 's':
		return parseSub(p)

	default:
		pos := p.Pos()
		p.Next()
		return nil, &Error{Kind: UnexpectedCharacter, Pos: pos, Rune: r}
	}
}

func parseDelimiter(p *addr.Parser) (rune, error) {
	pos := p.Pos()
	delim, ok := p.Next()
	if !ok {
		return 0, &Error{Kind: MissingDelimiter, Pos: pos}
	}
	return delim, nil
}

func parseCommandRegex(p *addr.Parser) (*regex.Regex, error) {
	delim, err := parseDelimiter(p)
	if err != nil {
		return nil, err
	}
	pos := p.Pos()
	pat, err := scanDelimited(p, delim)
	if err != nil {
		return nil, err
	}
	re, err := regex.Compile(pat)
	if err != nil {
		return nil, &Error{Kind: InvalidRegex, Pos: pos, Err: err}
	}
	return re, nil
}

func parseCommandTemplate(p *addr.Parser) (string, error) {
	delim, err := parseDelimiter(p)
	if err != nil {
		return "", err
	}
	return scanDelimited(p, delim)
}

// parseSub parses s/re/tpl/ or s/re/tpl/g, desugaring the global form into
// [LoopMatches(re), Sub(re, tpl)] sharing one compiled regex (spec.md 4.3,
// "the pair is simply pushed in order").
func parseSub(p *addr.Parser) ([]Expr, error) {
	p.Next() // 's'
	delim, err := parseDelimiter(p)
	if err != nil {
		return nil, err
	}
	pos := p.Pos()
	pat, err := scanDelimited(p, delim)
	if err != nil {
		return nil, err
	}
	re, err := regex.Compile(pat)
	if err != nil {
		return nil, &Error{Kind: InvalidRegex, Pos: pos, Err: err}
	}
	tpl, err := scanDelimited(p, delim)
	if err != nil {
		return nil, err
	}
	global := false
	if r, ok := p.Peek(); ok && r == 'g' {
		p.Next()
		global = true
	}
	sub := exprSub(re, tpl)
	if !global {
		return []Expr{sub}, nil
	}
	return []Expr{exprLoopMatches(re), sub}, nil
}

// parseGroup parses the branches of an expression group; the leading '{'
// has already been consumed.
func parseGroup(p *addr.Parser) (Expr, error) {
	p.SkipSpace()
	if r, ok := p.Peek(); ok && r == '}' {
		p.Next()
		return Expr{}, &Error{Kind: EmptyExpressionGroup, Pos: p.Pos()}
	}

	var branches [][]Expr
	for {
		branch, err := parseBranch(p)
		if err != nil {
			return Expr{}, err
		}
		branches = append(branches, branch)

		p.SkipSpace()
		r, ok := p.Next()
		if !ok {
			return Expr{}, &Error{Kind: UnclosedExpressionGroup, Pos: p.Pos()}
		}
		if r == '}' {
			break
		}
		if r == ';' {
			p.SkipSpace()
			continue
		}
		return Expr{}, &Error{Kind: UnexpectedCharacter, Pos: p.Pos() - 1, Rune: r}
	}
	return exprGroup(branches), nil
}

func parseBranch(p *addr.Parser) ([]Expr, error) {
	p.SkipSpace()
	var exprs []Expr
	for {
		r, ok := p.Peek()
		if !ok {
			return nil, &Error{Kind: UnclosedExpressionGroup, Pos: p.Pos()}
		}
		if r == ';' || r == '}' {
			break
		}
		es, err := parseExpr(p)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, es...)
		p.SkipSpace()
	}
	if len(exprs) == 0 {
		return nil, &Error{Kind: EmptyExpressionGroupBranch, Pos: p.Pos()}
	}
	return exprs, nil
}

// scanDelimited reads runes up to the next unescaped delim, which it
// consumes. A backslash escapes the following rune; when that rune is
// delim itself, the pair collapses to a literal delim character in the
// result (so the scan doesn't stop there) — any other escape is left
// untouched for the template expander (spec.md 4.5) to resolve. EOF
// before a closing delim is UnclosedDelimiter.
func scanDelimited(p *addr.Parser, delim rune) (string, error) {
	start := p.Pos()
	var out []rune
	for {
		r, ok := p.Next()
		if !ok {
			return "", &Error{Kind: UnclosedDelimiter, Pos: start, Rune: delim}
		}
		if r == '\\' {
			esc, ok := p.Next()
			if !ok {
				out = append(out, '\\')
				break
			}
			if esc == delim {
				out = append(out, delim)
			} else {
				out = append(out, '\\', esc)
			}
			continue
		}
		if r == delim {
			break
		}
		out = append(out, r)
	}
	return string(out), nil
}
