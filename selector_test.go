package fsops_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gobeaver/fsops"
	"github.com/gobeaver/fsops/driver/memory"
)

func seedSelectorFS(t *testing.T) fsops.FileSystem {
	t.Helper()
	ctx := context.Background()
	fs := memory.New()

	for _, p := range []string{
		"readme.md",
		"main.go",
		"docs/guide.md",
		"docs/api/reference.md",
		"src/util.go",
	} {
		if _, err := fs.Write(ctx, p, strings.NewReader("content of "+p)); err != nil {
			t.Fatalf("seed %s: %v", p, err)
		}
	}
	return fs
}

func pathsOf(files []fsops.FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestListWithSelectorGlobName(t *testing.T) {
	fs := seedSelectorFS(t)

	sel, err := fsops.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}

	files, err := fsops.ListWithSelector(context.Background(), fs, "/", sel, true)
	if err != nil {
		t.Fatal(err)
	}

	got := pathsOf(files)
	want := map[string]bool{"main.go": true, "src/util.go": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want the 2 .go files", got)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected match %s", p)
		}
	}
}

func TestListWithSelectorGlobPath(t *testing.T) {
	fs := seedSelectorFS(t)

	files, err := fsops.ListWithSelector(context.Background(), fs, "/", fsops.MustGlob("docs/**"), true)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("got %v, want the 2 files under docs/", pathsOf(files))
	}
}

func TestListWithSelectorComposed(t *testing.T) {
	fs := seedSelectorFS(t)

	sel := fsops.And(
		fsops.MustGlob("*.md"),
		fsops.Not(fsops.FuncSelector(func(f *fsops.FileInfo) bool {
			return strings.HasPrefix(f.Path, "docs/")
		})),
	)

	files, err := fsops.ListWithSelector(context.Background(), fs, "/", sel, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || files[0].Path != "readme.md" {
		t.Errorf("got %v, want [readme.md]", pathsOf(files))
	}
}

func TestListWithSelectorDepth(t *testing.T) {
	fs := seedSelectorFS(t)

	files, err := fsops.ListWithSelector(context.Background(), fs, "/", fsops.Depth(1, ""), true)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range files {
		if strings.Contains(f.Path, "/") {
			t.Errorf("depth 1 listing contains nested path %s", f.Path)
		}
	}
	if len(files) != 2 {
		t.Errorf("got %v, want the 2 top-level files", pathsOf(files))
	}
}

func TestGlobInvalidPattern(t *testing.T) {
	if _, err := fsops.Glob("[unterminated"); err == nil {
		t.Fatal("expected error for invalid glob pattern")
	}
}
