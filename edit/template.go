package edit

import (
	"strings"

	"github.com/biox/ad/regex"
)

// expandTemplate implements C5: filename substitution, then the \n/\t
// escapes, then $0..$9 submatch substitution, each pass applied textually
// and left-to-right over the whole string so far. This ordering is the
// source of the documented re-entry pitfall (spec.md 9): if substituting
// $1 injects the literal text "$2", the later $2 pass will substitute it
// too, while an injected "$0" will not be re-visited since $0 has already
// been processed. This is intentional, not a bug to "fix".
func expandTemplate(tpl string, m *regex.Match, ed Edit, fname string) (string, error) {
	s := tpl

	if strings.Contains(s, "$FILENAME") {
		s = strings.ReplaceAll(s, "$FILENAME", fname)
	}

	s = resolveEscapes(s)

	for n := 0; n <= 9; n++ {
		token := "$" + string(rune('0'+n))
		if !strings.Contains(s, token) {
			continue
		}
		sub, ok := ed.Submatch(m, n)
		if !ok {
			return "", &Error{Kind: InvalidSubstitution, N: n}
		}
		s = strings.ReplaceAll(s, token, sub)
	}

	return s, nil
}

// resolveEscapes replaces the two recognized escape sequences, \n and \t,
// with their literal characters; every other backslash sequence (and a
// lone trailing backslash) is left exactly as written.
func resolveEscapes(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'n':
				b.WriteRune('\n')
				i++
				continue
			case 't':
				b.WriteRune('\t')
				i++
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
