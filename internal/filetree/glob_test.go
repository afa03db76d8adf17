package filetree_test

import (
	"sort"
	"testing"

	"github.com/crystalix007/fgroup/internal/filetree"
)

func names(nodes []*filetree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	sort.Strings(out)
	return out
}

func collect(seq func(yield func(*filetree.Node) bool)) []*filetree.Node {
	var out []*filetree.Node
	seq(func(n *filetree.Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

// A plain, non-special glob matches immediate children only.
func TestGlobChildrenPlain(t *testing.T) {
	tree := newTestTree(t, "a.txt", "b.txt", "a.py")

	matches := collect(tree.Root().GlobChildren("*.txt", false))
	if got := names(matches); len(got) != 2 || got[0] != "a.txt" || got[1] != "b.txt" {
		t.Fatalf("matches = %v, want [a.txt b.txt]", got)
	}
}

// "**" recursively matches every descendant file across all depths.
func TestGlobChildrenRecursive(t *testing.T) {
	tree := newTestTree(t, "1/a.py", "1/2/b.py", "c.py")

	matches := collect(tree.Root().GlobChildren("**/*.py", false))
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3: %v", len(matches), names(matches))
	}
}

// "," alternation evaluates each alternative independently and yields the
// union of their matches.
func TestGlobChildrenAlternation(t *testing.T) {
	tree := newTestTree(t, "a.txt", "b.py", "c.md")

	matches := collect(tree.Root().GlobChildren("*.txt, *.py", false))
	if got := names(matches); len(got) != 2 || got[0] != "a.txt" || got[1] != "b.py" {
		t.Fatalf("matches = %v, want [a.txt b.py]", got)
	}
}

// The parent operator (`..`) yields the (deduplicated, sorted) parent
// directories of its pre-part's matches, pruning the matched nodes out of
// the tree under a transactional guard so ancestors survive.
func TestGlobChildrenParentOperator(t *testing.T) {
	tree := newTestTree(t, "1/match.txt", "2/match.txt", "2/other.txt")

	matches := collect(tree.Root().GlobChildren("*/match.txt/..", false))
	if got := names(matches); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Fatalf("matches = %v, want [1 2]", got)
	}

	// The matched match.txt node under "2" was pruned away (it was never
	// globbed into existence independently of this match, so "2" now has
	// no children at all, not even the untouched other.txt).
	two := tree.Root().GetChild("2", nil, nil)
	if len(two.Children()) != 0 {
		t.Fatalf("children of 2 = %v, want none (match.txt pruned)", names(two.Children()))
	}
}

// Every "." segment of a pattern is dropped; a pattern that's nothing but
// "." segments resolves to the node itself.
func TestGlobChildrenDotSegmentStrips(t *testing.T) {
	tree := newTestTree(t, "a.txt")

	matches := collect(tree.Root().GlobChildren(".", false))
	if len(matches) != 1 || matches[0] != tree.Root() {
		t.Fatalf("expected '.' to resolve to the receiver node itself")
	}
}

// LessPath orders by path-segment sequence rather than raw string
// comparison: "a/b" sorts before "a-b" (the "a" segment is a prefix of
// "a-b"'s only segment), even though raw byte comparison would put "a-b"
// first since '-' (0x2D) sorts before '/' (0x2F).
func TestLessPathSegmentOrder(t *testing.T) {
	if !filetree.LessPath("a/b", "a-b") {
		t.Fatalf("expected \"a/b\" to sort before \"a-b\" by segment order")
	}
	if !("a-b" < "a/b") {
		t.Fatalf("test assumption broken: raw string comparison should disagree with segment order")
	}
	if !filetree.LessPath("a/b", "a/b/c") {
		t.Fatalf("expected a shorter path to sort before its own extension")
	}
}
