package zlob

import (
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func memFsWith(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()

	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): %v", f, err)
		}
	}

	return fs
}

func TestGlobBasic(t *testing.T) {
	fs := memFsWith(t, "a.go", "b.go", "c.txt")

	res, err := Glob("*.go", 0, WithFs(fs))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	got := res.Matches()
	sort.Strings(got)

	want := []string{"a.go", "b.go"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}

	if !res.MagChar {
		t.Fatal("expected MagChar to be set for a wildcard pattern")
	}
}

func TestGlobNoMatchReturnsError(t *testing.T) {
	fs := memFsWith(t, "a.go")

	res, err := Glob("*.rs", 0, WithFs(fs))
	if err != ErrNoMatch {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	if len(res.Matches()) != 0 {
		t.Fatalf("expected no matches, got %v", res.Matches())
	}
}

func TestGlobNoCheckReturnsPatternItself(t *testing.T) {
	fs := memFsWith(t, "a.go")

	res, err := Glob("*.rs", NOCHECK, WithFs(fs))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	if got := res.Matches(); len(got) != 1 || got[0] != "*.rs" {
		t.Fatalf("got %v, want [*.rs]", got)
	}
}

func TestGlobAppend(t *testing.T) {
	fs := memFsWith(t, "a.go", "b.rs")

	first, err := Glob("*.go", 0, WithFs(fs))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	second, err := Glob("*.rs", APPEND, WithFs(fs), WithAppend(first))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	got := second.Matches()
	sort.Strings(got)

	want := []string{"a.go", "b.rs"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGlobDoOffs(t *testing.T) {
	fs := memFsWith(t, "a.go")

	res, err := Glob("*.go", DOOFFS, WithFs(fs), WithOffs(2))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	if res.Offs != 2 || len(res.Pathv) != 3 {
		t.Fatalf("got Offs=%d Pathv=%v", res.Offs, res.Pathv)
	}

	if res.Pathv[0] != "" || res.Pathv[1] != "" {
		t.Fatalf("expected leading reserved empty slots, got %v", res.Pathv)
	}
}

func TestGlobGitignore(t *testing.T) {
	fs := memFsWith(t, "src/a.go", "src/b.go", "vendor/c.go")

	res, err := Glob(
		"**/*.go",
		GITIGNORE|DOUBLESTARRECURSIVE,
		WithFs(fs),
		WithGitignoreLines("vendor/"),
	)
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	got := res.Matches()
	sort.Strings(got)

	for _, p := range got {
		if p == "vendor/c.go" {
			t.Fatalf("expected vendor/c.go to be pruned by the gitignore filter, got %v", got)
		}
	}
}

func TestGlobOnlyDirFlag(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("dir", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := afero.WriteFile(fs, "file", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Glob("*", ONLYDIR, WithFs(fs))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}

	if got := res.Matches(); len(got) != 1 || got[0] != "dir" {
		t.Fatalf("got %v, want [dir]", got)
	}
}
