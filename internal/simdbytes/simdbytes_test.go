package simdbytes

import "testing"

func TestIndexOfByte(t *testing.T) {
	cases := []struct {
		haystack string
		needle   byte
		want     int
	}{
		{"", 'a', -1},
		{"a", 'a', 0},
		{"abcdefgh", 'h', 7},
		{"abcdefghijklmnop", 'm', 12},
		{"xxxxxxxxxxxxxxxx", 'y', -1},
	}

	for _, c := range cases {
		if got := IndexOfByte([]byte(c.haystack), c.needle); got != c.want {
			t.Errorf("IndexOfByte(%q, %q) = %d, want %d", c.haystack, c.needle, got, c.want)
		}
	}
}

func TestIndexOfAny2(t *testing.T) {
	if got := IndexOfAny2([]byte("hello.world"), '.', '/'); got != 5 {
		t.Errorf("got %d, want 5", got)
	}

	if got := IndexOfAny2([]byte("helloworld"), '.', '/'); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestHasWildcards(t *testing.T) {
	cases := map[string]bool{
		"":            false,
		"literal.txt": false,
		"*.txt":       true,
		"file?.txt":   true,
		"[abc].txt":   true,
		"averylongliteralprefixwithoutwildcards": false,
	}

	for pattern, want := range cases {
		if got := HasWildcards([]byte(pattern)); got != want {
			t.Errorf("HasWildcards(%q) = %v, want %v", pattern, got, want)
		}
	}
}

func TestSuffixMatcher(t *testing.T) {
	m := NewSuffixMatcher([]byte(".go"))

	if !m.Match([]byte("main.go")) {
		t.Error("expected match")
	}

	if m.Match([]byte("main.gox")) {
		t.Error("expected no match")
	}

	if m.Match([]byte("go")) {
		t.Error("shorter than suffix must not match")
	}

	long := NewSuffixMatcher([]byte(".tar.gz"))
	if !long.Match([]byte("archive.tar.gz")) {
		t.Error("expected scalar match")
	}

	empty := NewSuffixMatcher(nil)
	if !empty.Match([]byte("anything")) {
		t.Error("empty suffix should match anything")
	}
}
