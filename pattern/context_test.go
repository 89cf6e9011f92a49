package pattern

import (
	"testing"

	"github.com/dmtrKovalenko/zlob/fnmatch"
)

func TestContextTemplateClassification(t *testing.T) {
	cases := []struct {
		pattern string
		want    Template
	}{
		{"file.txt", TemplateLiteral},
		{"*", TemplateStarOnly},
		{"*.go", TemplateStarDotExt},
		{"foo*", TemplatePrefixStar},
		{"foo*bar", TemplatePrefixStarExt},
		{"foo*.bar", TemplatePrefixStarExt},
		{"[abc]", TemplateBracketWithAffixes},
		{"foo[abc]", TemplateBracketWithAffixes},
		{"[abc]bar", TemplateBracketWithAffixes},
		{"foo[abc]bar", TemplateBracketWithAffixes},
		{"foo?bar", TemplateNone},
		{"foo*bar*baz", TemplateNone},
	}

	for _, c := range cases {
		ctx := NewContext([]byte(c.pattern), fnmatch.Flags{})
		if ctx.Template != c.want {
			t.Errorf("NewContext(%q).Template = %v, want %v", c.pattern, ctx.Template, c.want)
		}
	}
}

func TestContextMatchAgreesWithFnmatch(t *testing.T) {
	cases := []struct {
		pattern string
		names   []string
	}{
		{"*.go", []string{"main.go", "main.gox", "main", ".go"}},
		{"foo*", []string{"foo", "foobar", "fo", "xfoo"}},
		{"foo*.bar", []string{"foo.bar", "fooxyz.bar", "foo.baz", "fo.bar"}},
		{"[abc]x", []string{"ax", "bx", "dx", "ax2"}},
		{"foo[0-9]bar", []string{"foo5bar", "fooxbar", "foo55bar"}},
		{`a\*b`, []string{"a*b", "ab", "axb"}},
		{`a\[b`, []string{"a[b", "ab"}},
		{"foo*", []string{"foo/bar", "foobar"}},
		{"*.go", []string{"dir/main.go", "main.go"}},
		{"foo*bar", []string{"foo/bar", "foobar", "foo/xbar"}},
		{"[abc]x", []string{"a/x"}},
	}

	flags := fnmatch.Flags{Pathname: true, Escapes: true}

	for _, c := range cases {
		ctx := NewContext([]byte(c.pattern), flags)

		for _, name := range c.names {
			want := fnmatch.Match([]byte(c.pattern), []byte(name), flags)
			got := ctx.Match([]byte(name))

			if got != want {
				t.Errorf("pattern %q name %q: Context.Match=%v fnmatch.Match=%v", c.pattern, name, got, want)
			}
		}
	}
}

func TestContextRequiredLastByte(t *testing.T) {
	ctx := NewContext([]byte("*.go"), fnmatch.Flags{})
	if !ctx.HasRequiredLastByte || ctx.RequiredLastByte != 'o' {
		t.Fatalf("expected required last byte 'o', got %v (%v)", ctx.RequiredLastByte, ctx.HasRequiredLastByte)
	}

	if ctx.Match([]byte("main.gx")) {
		t.Fatal("required-last-byte check should reject before full match")
	}

	star := NewContext([]byte("*"), fnmatch.Flags{})
	if star.HasRequiredLastByte {
		t.Fatal("a bare '*' has no determinable required last byte")
	}
}

func TestContextExtglobBypassesTemplateFastPath(t *testing.T) {
	flags := fnmatch.Flags{Extglob: true}
	ctx := NewContext([]byte("*.!(js)"), flags)

	if ctx.Template != TemplateNone {
		t.Fatalf("expected TemplateNone for an extglob pattern, got %v", ctx.Template)
	}

	if ctx.HasRequiredLastByte {
		t.Fatal("extglob patterns must not use the required-last-byte shortcut")
	}

	cases := map[string]bool{"foo.js": false, "foo.ts": true, "foo.css": true}
	for name, want := range cases {
		if got := ctx.Match([]byte(name)); got != want {
			t.Errorf("Match(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestContextEscapeBypassesTemplateFastPath(t *testing.T) {
	flags := fnmatch.Flags{Escapes: true}
	ctx := NewContext([]byte(`a\*b`), flags)

	if ctx.Template != TemplateNone {
		t.Fatalf("expected TemplateNone for an escape-bearing pattern, got %v", ctx.Template)
	}

	if ctx.HasRequiredLastByte {
		t.Fatal("escape-bearing patterns must not use the required-last-byte shortcut")
	}

	cases := map[string]bool{"a*b": true, "ab": false, "axb": false}
	for name, want := range cases {
		if got := ctx.Match([]byte(name)); got != want {
			t.Errorf("Match(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestContextDotHandling(t *testing.T) {
	ctx := NewContext([]byte(".gitignore"), fnmatch.Flags{})
	if !ctx.StartsWithDot {
		t.Fatal("expected StartsWithDot")
	}

	dotdot := NewContext([]byte(".."), fnmatch.Flags{})
	if !dotdot.IsDotOrDotDot {
		t.Fatal("expected IsDotOrDotDot for '..'")
	}
}
