package addr

import "github.com/biox/ad/regex"

// ParseAddr parses an address expression from p. See spec.md 4.1 for the
// grammar. A missing address (NotAnAddress) is a normal, recoverable
// outcome: the command parser falls back to Addr::full() on it.
func ParseAddr(p *Parser) (Addr, error) {
	savedPos := p.Pos()

	start, hasStart, err := tryParseSimpleAddr(p)
	if err != nil {
		return Addr{}, err
	}
	if !hasStart {
		p.SetPos(savedPos)
	}

	r, ok := p.Peek()
	if ok && r == ',' {
		p.Next()
		end, hasEnd, err := tryParseSimpleAddr(p)
		if err != nil {
			return Addr{}, err
		}
		return Compound(start, hasStart, end, hasEnd), nil
	}

	if !hasStart {
		return Addr{}, &ParseError{Kind: NotAnAddress, Pos: savedPos}
	}
	return Simple(start), nil
}

// tryParseSimpleAddr attempts a SimpleAddr, translating a NotAnAddress
// failure into (zero, false, nil) rather than propagating it, since a
// missing side of a compound address is legal.
func tryParseSimpleAddr(p *Parser) (SimpleAddr, bool, error) {
	savedPos := p.Pos()
	sa, err := parseSimpleAddr(p)
	if err == nil {
		return sa, true, nil
	}
	if IsNotAnAddress(err) {
		p.SetPos(savedPos)
		return SimpleAddr{}, false, nil
	}
	return SimpleAddr{}, false, err
}

func parseSimpleAddr(p *Parser) (SimpleAddr, error) {
	base, err := parseAddrBase(p)
	if err != nil {
		return SimpleAddr{}, err
	}
	sa := SimpleAddr{Base: base}
	for {
		r, ok := p.Peek()
		if !ok || (r != '-' && r != '+') {
			break
		}
		savedPos := p.Pos()
		suf, err := parseAddrBase(p)
		if err != nil {
			if IsNotAnAddress(err) {
				p.SetPos(savedPos)
				break
			}
			return SimpleAddr{}, err
		}
		if !suf.isValidSuffix() {
			return SimpleAddr{}, &ParseError{Kind: InvalidSuffix, Pos: savedPos}
		}
		sa.Suffixes = append(sa.Suffixes, suf)
	}
	return sa, nil
}

// isAddrTerminator reports whether r ends an address (space, or the start
// of a compound separator); EOF is handled by callers checking Peek's ok.
func isAddrTerminator(r rune) bool {
	return isSpace(r) || r == ','
}

func parseAddrBase(p *Parser) (AddrBase, error) {
	start := p.Pos()
	r, ok := p.Peek()
	if !ok {
		return AddrBase{}, &ParseError{Kind: NotAnAddress, Pos: start}
	}

	if r == '-' || r == '+' {
		p.Next()
		r2, ok2 := p.Peek()

		switch {
		case ok2 && (r2 == '-' || r2 == '+') && r2 != r:
			p.Next()
			return AddrBase{Kind: CurrentLine}, nil

		case !ok2 || isAddrTerminator(r2):
			if r == '-' {
				return AddrBase{Kind: Bol}, nil
			}
			return AddrBase{Kind: Eol}, nil

		case r2 == '#':
			p.Next()
			n, err := parseDigits(p)
			if err != nil {
				return AddrBase{}, err
			}
			if r == '-' {
				n = -n
			}
			return AddrBase{Kind: RelativeChar, N: n}, nil

		case isDigit(r2):
			n, err := parseDigits(p)
			if err != nil {
				return AddrBase{}, err
			}
			if r == '-' {
				n = -n
			}
			return AddrBase{Kind: RelativeLine, N: n}, nil

		case r2 == '/':
			p.Next()
			re, err := parseDelimitedRegex(p)
			if err != nil {
				return AddrBase{}, err
			}
			if r == '-' {
				return AddrBase{Kind: RegexBack, Re: re}, nil
			}
			return AddrBase{Kind: Regex, Re: re}, nil

		default:
			p.SetPos(start)
			return AddrBase{}, &ParseError{Kind: NotAnAddress, Pos: start}
		}
	}

	switch {
	case r == '.':
		p.Next()
		return AddrBase{Kind: Current}, nil
	case r == '0':
		p.Next()
		return AddrBase{Kind: Bof}, nil
	case r == '$':
		p.Next()
		return AddrBase{Kind: Eof}, nil
	case r == '#':
		p.Next()
		n, err := parseDigits(p)
		if err != nil {
			return AddrBase{}, err
		}
		return AddrBase{Kind: Char, N: n}, nil
	case isDigit(r):
		n, err := parseDigits(p)
		if err != nil {
			return AddrBase{}, err
		}
		if col, ok := p.Peek(); ok && col == ':' {
			p.Next()
			c, err := parseDigits(p)
			if err != nil {
				return AddrBase{}, err
			}
			return AddrBase{Kind: LineAndColumn, N: satSub1(n), Col: satSub1(c)}, nil
		}
		return AddrBase{Kind: Line, N: satSub1(n)}, nil
	case r == '/':
		p.Next()
		re, err := parseDelimitedRegex(p)
		if err != nil {
			return AddrBase{}, err
		}
		return AddrBase{Kind: Regex, Re: re}, nil
	default:
		return AddrBase{}, &ParseError{Kind: NotAnAddress, Pos: start}
	}
}

// satSub1 is the saturating subtraction of one used to convert the
// grammar's 1-based line/column literals into the 0-based values AddrBase
// stores.
func satSub1(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}

func parseDigits(p *Parser) (int, error) {
	start := p.Pos()
	n := 0
	any := false
	for {
		r, ok := p.Peek()
		if !ok || !isDigit(r) {
			break
		}
		p.Next()
		n = n*10 + int(r-'0')
		any = true
	}
	if !any {
		return 0, &ParseError{Kind: UnexpectedCharacter, Pos: start}
	}
	return n, nil
}

// parseDelimitedRegex is called with the leading '/' already consumed. It
// reads a pattern up to the next unescaped '/', compiling the result.
// Backslash escapes the following character (most usefully the delimiter
// itself); EOF before the closing delimiter is UnclosedDelimiter.
func parseDelimitedRegex(p *Parser) (*regex.Regex, error) {
	start := p.Pos()
	var pat []rune
	for {
		r, ok := p.Next()
		if !ok {
			return nil, &ParseError{Kind: UnclosedDelimiter, Pos: start}
		}
		if r == '\\' {
			esc, ok := p.Next()
			if !ok {
				pat = append(pat, '\\')
				break
			}
			if esc == '/' {
				pat = append(pat, '/')
			} else {
				pat = append(pat, '\\', esc)
			}
			continue
		}
		if r == '/' {
			break
		}
		pat = append(pat, r)
	}
	re, err := regex.Compile(string(pat))
	if err != nil {
		return nil, &ParseError{Kind: InvalidRegex, Pos: start, Err: err}
	}
	return re, nil
}
