package regex

// Match is an opaque match record: a location (From, To exclusive) and up
// to 10 submatches (group 0 is the whole match), all in absolute character
// indices.
type Match struct {
	from, to int
	groups   []group // groups[n] is submatch n; groups[0] is the whole match
}

type group struct {
	from, to int // to == -1 marks an unmatched group
	ok       bool
}

// newMatch translates a stdlib regexp FindStringSubmatchIndex result (byte
// offsets into text) into a Match with absolute character indices, via the
// byte->char table collect/collectReverse produced alongside text.
func newMatch(loc []int, byteToChar []int, text string, r *Regex) *Match {
	m := &Match{
		from: charIdxAt(byteToChar, loc[0], 0),
		to:   charIdxAt(byteToChar, loc[1], 0),
	}
	n := len(loc) / 2
	m.groups = make([]group, n)
	for i := 0; i < n; i++ {
		s, e := loc[2*i], loc[2*i+1]
		if s < 0 || e < 0 {
			m.groups[i] = group{ok: false}
			continue
		}
		m.groups[i] = group{
			from: charIdxAt(byteToChar, s, 0),
			to:   charIdxAt(byteToChar, e, 0),
			ok:   true,
		}
	}
	return m
}

// Synthetic produces a group-less match spanning [from, to), used by the
// engine to carry a plain range through step without a real regex match
// behind it (the initial dot, LoopBetweenMatches gaps).
func Synthetic(from, to int) *Match {
	return &Match{from: from, to: to, groups: []group{{from: from, to: to, ok: true}}}
}

// From is the start of the match.
func (m *Match) From() int { return m.from }

// To is one past the end of the match.
func (m *Match) To() int { return m.to }

// Len is the number of characters the match spans.
func (m *Match) Len() int { return m.to - m.from }

// SubmatchLoc returns the (from, to, ok) location of submatch n. ok is
// false if n is out of range or the group did not participate in the
// match.
func (m *Match) SubmatchLoc(n int) (from, to int, ok bool) {
	if n < 0 || n >= len(m.groups) {
		return 0, 0, false
	}
	g := m.groups[n]
	return g.from, g.to, g.ok
}

// ApplyOffset returns a copy of m with every location shifted by delta,
// used by apply_matches to re-anchor a pre-collected match after earlier
// edits in the same loop changed the text length.
func (m *Match) ApplyOffset(delta int) *Match {
	shifted := &Match{from: m.from + delta, to: m.to + delta}
	shifted.groups = make([]group, len(m.groups))
	for i, g := range m.groups {
		if !g.ok {
			shifted.groups[i] = g
			continue
		}
		shifted.groups[i] = group{from: g.from + delta, to: g.to + delta, ok: true}
	}
	return shifted
}

// collectReverse materializes a reverse CharIter (one that yields
// characters from the end of its window toward the start) into forward
// text plus a matching byte->char table, by collecting then reversing back
// into source order.
func collectReverse(it CharIter) (text string, byteToChar []int) {
	type rc struct {
		idx int
		ch  rune
	}
	var chars []rc
	for {
		idx, ch, ok := it.Next()
		if !ok {
			break
		}
		chars = append(chars, rc{idx, ch})
	}
	// chars is in reverse (descending idx) order; un-reverse it.
	for i, j := 0, len(chars)-1; i < j; i, j = i+1, j-1 {
		chars[i], chars[j] = chars[j], chars[i]
	}
	var b []byte
	var buf [4]byte
	for _, c := range chars {
		n := encodeRune(buf[:], c.ch)
		for i := 0; i < n; i++ {
			byteToChar = append(byteToChar, c.idx)
		}
		b = append(b, buf[:n]...)
	}
	byteToChar = append(byteToChar, -1)
	return string(b), byteToChar
}
