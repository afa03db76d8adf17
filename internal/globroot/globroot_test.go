package globroot

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"
)

func mkTree(t *testing.T, files []string, dirs []string) string {
	t.Helper()
	root := t.TempDir()

	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir %q: %v", d, err)
		}
	}
	for _, f := range files {
		full := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir for %q: %v", f, err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatalf("write %q: %v", f, err)
		}
	}

	return root
}

func collect(t *testing.T, root, pattern string, dirsOnly bool) []string {
	t.Helper()
	var got []string
	for p := range GlobRoot(root, pattern, dirsOnly) {
		got = append(got, p)
	}
	sort.Strings(got)
	return got
}

func TestGlobRootEmptyPattern(t *testing.T) {
	root := mkTree(t, []string{"a.txt"}, nil)
	if got := collect(t, root, "", false); got != nil {
		t.Errorf("empty pattern yielded %v, want nothing", got)
	}
}

func TestGlobRootEmptyRootSentinel(t *testing.T) {
	got := collect(t, "", "/", false)
	if len(got) != 1 {
		t.Fatalf("empty root + separator pattern = %v, want one sentinel path", got)
	}
}

func TestGlobRootStarSingleSegment(t *testing.T) {
	root := mkTree(t, []string{"a.py", "b.py", "a.txt"}, nil)
	got := collect(t, root, "*.py", false)
	want := []string{"a.py", "b.py"}
	if !slices.Equal(got, want) {
		t.Errorf("*.py = %v, want %v", got, want)
	}
}

func TestGlobRootHiddenEntriesIncluded(t *testing.T) {
	root := mkTree(t, []string{".hidden", "visible"}, nil)
	got := collect(t, root, "*", false)
	want := []string{".hidden", "visible"}
	if !slices.Equal(got, want) {
		t.Errorf("* = %v, want %v (hidden entries must be included)", got, want)
	}
}

func TestGlobRootDirsOnly(t *testing.T) {
	root := mkTree(t, []string{"dir/file.txt"}, []string{"otherdir"})
	got := collect(t, root, "*", true)
	want := []string{"dir", "otherdir"}
	if !slices.Equal(got, want) {
		t.Errorf("dirs-only * = %v, want %v", got, want)
	}
}

func TestGlobRootRecursive(t *testing.T) {
	root := mkTree(t, []string{"a.py", "1/b.py", "1/2/c.py", "1/2/c.txt"}, nil)
	got := collect(t, root, "**/*.py", false)
	want := []string{"1/2/c.py", "1/b.py", "a.py"}
	if !slices.Equal(got, want) {
		t.Errorf("**/*.py = %v, want %v", got, want)
	}
}

func TestGlobRootDotSegmentStaysInPlace(t *testing.T) {
	root := mkTree(t, []string{"a/b.txt"}, nil)
	got := collect(t, root, "a/./b.txt", false)
	want := []string{"a/b.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("a/./b.txt = %v, want %v", got, want)
	}
}

func TestGlobRootMultiSegment(t *testing.T) {
	root := mkTree(t, []string{"1/2/a.txt", "1/3/a.txt"}, nil)
	got := collect(t, root, "*/2/a.txt", false)
	want := []string{"1/2/a.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("*/2/a.txt = %v, want %v", got, want)
	}
}
