package brace

import (
	"reflect"
	"testing"
)

func TestHasBraces(t *testing.T) {
	cases := map[string]bool{
		"foo.{js,ts}": true,
		"foo.txt":     false,
		"{single}":    false,
		"a\\{b,c\\}":  false,
		"{a,b}/{c,d}": true,
	}

	for pattern, want := range cases {
		if got := HasBraces(pattern); got != want {
			t.Errorf("HasBraces(%q) = %v, want %v", pattern, got, want)
		}
	}
}

func TestExpandSimple(t *testing.T) {
	got := Expand("foo.{js,ts}")
	want := []string{"foo.js", "foo.ts"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpandNested(t *testing.T) {
	got := Expand("a{b,c{d,e}}f")
	want := []string{"abf", "acdf", "acef"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpandMultipleGroups(t *testing.T) {
	got := Expand("{a,b}/{c,d}")
	want := []string{"a/c", "a/d", "b/c", "b/d"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpandSingleAlternativeIsLiteral(t *testing.T) {
	got := Expand("{single}")
	want := []string{"{single}"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpandUnterminatedIsLiteral(t *testing.T) {
	got := Expand("foo{bar")
	want := []string{"foo{bar"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestExpandDeduplicates(t *testing.T) {
	got := Expand("{a,a,b}")
	want := []string{"a", "b"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got, want)
	}
}

func TestSingleWalkAlternatives(t *testing.T) {
	prefix, alts, suffix, ok := SingleWalkAlternatives("foo.{js,ts,css}")
	if !ok {
		t.Fatal("expected single-walk mode to apply")
	}

	if prefix != "foo." || suffix != "" {
		t.Errorf("prefix=%q suffix=%q", prefix, suffix)
	}

	want := []string{"js", "ts", "css"}
	if !reflect.DeepEqual(alts, want) {
		t.Errorf("alts = %v, want %v", alts, want)
	}
}

func TestSingleWalkAlternativesRejectsSlash(t *testing.T) {
	_, _, _, ok := SingleWalkAlternatives("{a/b,c}")
	if ok {
		t.Fatal("expected single-walk mode to be rejected when an alternative contains '/'")
	}
}

func TestSingleWalkAlternativesRejectsMultipleGroups(t *testing.T) {
	_, _, _, ok := SingleWalkAlternatives("{a,b}/{c,d}")
	if ok {
		t.Fatal("expected single-walk mode to be rejected with more than one brace group")
	}
}
