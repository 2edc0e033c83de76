package addr

import "testing"

func mustParse(t *testing.T, s string) Addr {
	t.Helper()
	p := NewParser(s)
	a, err := ParseAddr(p)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", s, err)
	}
	return a
}

func TestParseSimpleBases(t *testing.T) {
	tests := []struct {
		in   string
		kind BaseKind
	}{
		{".", Current},
		{"0", Bof},
		{"$", Eof},
		{"5", Line},
		{"+3", RelativeLine},
		{"-3", RelativeLine},
		{"#7", Char},
		{"+#2", RelativeChar},
		{"-#2", RelativeChar},
		{"-", Bol},
		{"+", Eol},
		{"-+", CurrentLine},
		{"+-", CurrentLine},
	}
	for _, test := range tests {
		a := mustParse(t, test.in)
		if a.Kind != SimpleKind {
			t.Errorf("ParseAddr(%q).Kind = %v, want SimpleKind", test.in, a.Kind)
			continue
		}
		if a.Simple.Base.Kind != test.kind {
			t.Errorf("ParseAddr(%q) base kind = %v, want %v", test.in, a.Simple.Base.Kind, test.kind)
		}
	}
}

func TestParseLineAndColumn(t *testing.T) {
	a := mustParse(t, "3:5")
	if a.Simple.Base.Kind != LineAndColumn {
		t.Fatalf("kind = %v, want LineAndColumn", a.Simple.Base.Kind)
	}
	if a.Simple.Base.N != 2 || a.Simple.Base.Col != 4 {
		t.Errorf("N=%d Col=%d, want N=2 Col=4 (1-based stored 0-based)", a.Simple.Base.N, a.Simple.Base.Col)
	}
}

func TestParseZeroIsBof(t *testing.T) {
	a := mustParse(t, "0")
	// "0" is the Bof literal in the grammar, not Line(0).
	if a.Simple.Base.Kind != Bof {
		t.Fatalf("ParseAddr(\"0\").Kind = %v, want Bof", a.Simple.Base.Kind)
	}
}

func TestParseRegexForwardAndBackward(t *testing.T) {
	a := mustParse(t, "/foo/")
	if a.Simple.Base.Kind != Regex {
		t.Fatalf("kind = %v, want Regex", a.Simple.Base.Kind)
	}
	b := mustParse(t, "-/foo/")
	if b.Simple.Base.Kind != RegexBack {
		t.Fatalf("kind = %v, want RegexBack", b.Simple.Base.Kind)
	}
}

func TestParseSuffixChain(t *testing.T) {
	a := mustParse(t, ".+3-2")
	if len(a.Simple.Suffixes) != 2 {
		t.Fatalf("got %d suffixes, want 2", len(a.Simple.Suffixes))
	}
	if a.Simple.Suffixes[0].Kind != RelativeLine || a.Simple.Suffixes[0].N != 3 {
		t.Errorf("suffix 0 = %+v, want RelativeLine(3)", a.Simple.Suffixes[0])
	}
	if a.Simple.Suffixes[1].Kind != RelativeLine || a.Simple.Suffixes[1].N != -2 {
		t.Errorf("suffix 1 = %+v, want RelativeLine(-2)", a.Simple.Suffixes[1])
	}
}

func TestParseCompoundAddr(t *testing.T) {
	a := mustParse(t, "2,5")
	if a.Kind != CompoundKind {
		t.Fatalf("kind = %v, want CompoundKind", a.Kind)
	}
	if !a.HasStart || !a.HasEnd {
		t.Errorf("HasStart=%v HasEnd=%v, want both true", a.HasStart, a.HasEnd)
	}
}

func TestParseCompoundMissingSides(t *testing.T) {
	a := mustParse(t, ",5")
	if a.Kind != CompoundKind || a.HasStart {
		t.Fatalf("%q: HasStart = %v, want false", ",5", a.HasStart)
	}
	b := mustParse(t, "2,")
	if b.Kind != CompoundKind || b.HasEnd {
		t.Fatalf("%q: HasEnd = %v, want false", "2,", b.HasEnd)
	}
}

func TestParseNotAnAddress(t *testing.T) {
	p := NewParser("x/foo/")
	_, err := ParseAddr(p)
	if !IsNotAnAddress(err) {
		t.Fatalf("ParseAddr(%q) err = %v, want NotAnAddress", "x/foo/", err)
	}
	if p.Pos() != 0 {
		t.Errorf("parser pos after NotAnAddress = %d, want 0 (untouched)", p.Pos())
	}
}

func TestParseUnclosedDelimiter(t *testing.T) {
	p := NewParser("/foo")
	_, err := ParseAddr(p)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnclosedDelimiter {
		t.Fatalf("err = %v, want UnclosedDelimiter", err)
	}
}

func TestFull(t *testing.T) {
	a := Full()
	if a.Kind != CompoundKind {
		t.Fatalf("Full().Kind = %v, want CompoundKind", a.Kind)
	}
	if a.Start.Base.Kind != Bof || a.End.Base.Kind != Eof {
		t.Errorf("Full() = %+v, want Bof,Eof", a)
	}
}
