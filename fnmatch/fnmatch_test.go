package fnmatch

import "testing"

func TestMatchLiteral(t *testing.T) {
	if !Match([]byte("file.txt"), []byte("file.txt"), Flags{}) {
		t.Fatal("expected literal match")
	}

	if Match([]byte("file.txt"), []byte("file.tx"), Flags{}) {
		t.Fatal("expected no match on truncated text")
	}
}

func TestMatchStar(t *testing.T) {
	cases := []struct {
		pattern, name string
		pathname      bool
		want          bool
	}{
		{"*.go", "main.go", false, true},
		{"*.go", "main.go.bak", false, false},
		{"a*b*c", "axxbyyc", false, true},
		{"a*b", "a/b", true, false},
		{"a*b", "a/b", false, true},
		{"*", "", false, true},
		{"*", "anything", false, true},
	}

	for _, c := range cases {
		got := Match([]byte(c.pattern), []byte(c.name), Flags{Pathname: c.pathname})
		if got != c.want {
			t.Errorf("Match(%q, %q, pathname=%v) = %v, want %v", c.pattern, c.name, c.pathname, got, c.want)
		}
	}
}

func TestMatchQuestion(t *testing.T) {
	if !Match([]byte("fil?.txt"), []byte("file.txt"), Flags{}) {
		t.Fatal("expected ? to match single byte")
	}

	if Match([]byte("fil?.txt"), []byte("fil.txt"), Flags{}) {
		t.Fatal("? must consume exactly one byte")
	}

	if Match([]byte("a?b"), []byte("a/b"), Flags{Pathname: true}) {
		t.Fatal("? must not match / when Pathname is set")
	}
}

func TestMatchBracket(t *testing.T) {
	cases := []struct {
		pattern, name string
		want          bool
	}{
		{"[abc].txt", "a.txt", true},
		{"[abc].txt", "d.txt", false},
		{"[!abc].txt", "d.txt", true},
		{"[a-c].txt", "b.txt", true},
		{"[[:digit:]].txt", "5.txt", true},
		{"[[:digit:]].txt", "x.txt", false},
		{"[[:alpha:]][[:digit:]]", "a1", true},
	}

	for _, c := range cases {
		if got := Match([]byte(c.pattern), []byte(c.name), Flags{}); got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.pattern, c.name, got, c.want)
		}
	}
}

func TestMatchCaseFold(t *testing.T) {
	if !Match([]byte("FILE.TXT"), []byte("file.txt"), Flags{CaseFold: true}) {
		t.Fatal("expected case-insensitive match")
	}

	if Match([]byte("FILE.TXT"), []byte("file.txt"), Flags{CaseFold: false}) != false {
		t.Fatal("expected case-sensitive mismatch")
	}
}

func TestMatchEscapes(t *testing.T) {
	if !Match([]byte(`a\*b`), []byte("a*b"), Flags{Escapes: true}) {
		t.Fatal("expected escaped * to match literal *")
	}

	if Match([]byte(`a\*b`), []byte("axb"), Flags{Escapes: true}) {
		t.Fatal("escaped * must not act as wildcard")
	}
}

func TestMatchMalformedBracketIsLiteral(t *testing.T) {
	if !Match([]byte("[abc"), []byte("[abc"), Flags{}) {
		t.Fatal("unterminated bracket should be treated as literal text")
	}
}

func TestMatchUnicodeBytes(t *testing.T) {
	if !Match([]byte("café*.txt"), []byte("café-notes.txt"), Flags{}) {
		t.Fatal("expected multi-byte UTF-8 literal prefix to match as opaque bytes")
	}
}
