package pathmatcher

import (
	"testing"

	"github.com/dmtrKovalenko/zlob/fnmatch"
)

func TestNewSingleMatch(t *testing.T) {
	m := NewSingle("*.go", fnmatch.Flags{Pathname: true})

	if !m.Match("main.go") {
		t.Fatal("expected main.go to match *.go")
	}

	if m.Match("main.txt") {
		t.Fatal("did not expect main.txt to match *.go")
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	m := NewSingle("*.go", fnmatch.Flags{Pathname: true})

	got := m.Filter([]string{"a.go", "a.txt", "b.go"})
	want := []string{"a.go", "b.go"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDecideLastMatchWins(t *testing.T) {
	m := New([]Rule{
		{Pattern: "*.go", Action: ActionInclude},
		{Pattern: "*_test.go", Action: ActionExclude},
	}, Options{Flags: fnmatch.Flags{Pathname: true}})

	res := m.Decide("main_test.go")
	if res.Included {
		t.Fatal("expected main_test.go to be excluded by the later, more specific rule")
	}

	if res.RuleIndex != 1 {
		t.Fatalf("expected the exclude rule (index 1) to win, got %d", res.RuleIndex)
	}

	res = m.Decide("main.go")
	if !res.Included {
		t.Fatal("expected main.go to be included")
	}
}

func TestDecideDefaultAction(t *testing.T) {
	m := New([]Rule{{Pattern: "*.go", Action: ActionInclude}}, Options{
		Flags:         fnmatch.Flags{Pathname: true},
		DefaultAction: ActionExclude,
	})

	res := m.Decide("README.md")
	if res.Matched {
		t.Fatal("no rule should have matched README.md")
	}

	if res.Included {
		t.Fatal("expected default action of exclude to apply")
	}
}

func TestMatcherBraceExpansion(t *testing.T) {
	m := NewSingle("*.{rs,toml}", fnmatch.Flags{Pathname: true})

	if !m.Match("Cargo.toml") {
		t.Fatal("expected Cargo.toml to match *.{rs,toml}")
	}

	if !m.Match("main.rs") {
		t.Fatal("expected main.rs to match *.{rs,toml}")
	}

	if m.Match("main.go") {
		t.Fatal("did not expect main.go to match *.{rs,toml}")
	}
}

func TestPathnameStarDoesNotCrossSlash(t *testing.T) {
	m := NewSingle("a*b", fnmatch.Flags{Pathname: true})

	if m.Match("a/b") {
		t.Fatal("'*' must not cross '/' when Pathname is set")
	}

	if !m.Match("axb") {
		t.Fatal("expected axb to match a*b")
	}
}

func TestLiteralRuleSetSkipsPatternEngine(t *testing.T) {
	m := New([]Rule{
		{Pattern: "a/b", Action: ActionInclude},
		{Pattern: "c/d", Action: ActionExclude},
	}, Options{Flags: fnmatch.Flags{Pathname: true}})

	res := m.Decide("a/b")
	if !res.Matched || !res.Included {
		t.Fatal("expected literal rule a/b to match and include")
	}

	res = m.Decide("c/d")
	if !res.Matched || res.Included {
		t.Fatal("expected literal rule c/d to match and exclude")
	}

	res = m.Decide("a/c")
	if res.Matched {
		t.Fatal("did not expect a/c to match either literal rule")
	}
}
