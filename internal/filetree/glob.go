package filetree

import (
	"sort"
	"strings"

	"github.com/crystalix007/fgroup/internal/globroot"
	"github.com/crystalix007/fgroup/internal/pathutil"
)

// GlobNodes resolves pattern against the filesystem rooted at this node's
// path, locating (and creating) a tree node for each match.
func (n *Node) GlobNodes(pattern string, dirsOnly bool) func(yield func(*Node) bool) {
	return func(yield func(*Node) bool) {
		for p := range globroot.GlobRoot(n.path, pattern, dirsOnly) {
			node := n.Locate(pathutil.SplitPath(p))
			if node == nil {
				continue
			}
			if !yield(node) {
				return
			}
		}
	}
}

// GlobChildren is the extended-glob interpreter: it understands `,
// `-separated alternation, the `..` parent operator, and the `**`
// recursive operator, in addition to the plain globs GlobNodes handles
// directly.
func (n *Node) GlobChildren(pattern string, dirsOnly bool) func(yield func(*Node) bool) {
	return func(yield func(*Node) bool) {
		n.weight++

		for _, alt := range strings.Split(pattern, ", ") {
			if !n.globAlternative(alt, dirsOnly, yield) {
				return
			}
		}
	}
}

// globAlternative evaluates one comma-separated alternative of a pattern.
// It returns false once yield has asked to stop; a true return means the
// caller should continue on to the next alternative.
func (n *Node) globAlternative(alt string, dirsOnly bool, yield func(*Node) bool) bool {
	parts := make([]string, 0, 4)
	for _, seg := range pathutil.SplitPath(alt) {
		if seg != "." {
			parts = append(parts, seg)
		}
	}

	if len(parts) == 0 {
		return yield(n)
	}

	if idx := indexOf(parts, ".."); idx >= 0 {
		return n.globParentOperator(parts, idx, dirsOnly, yield)
	}

	if idx := indexOf(parts, "**"); idx >= 0 {
		return n.globRecursiveOperator(parts, idx, dirsOnly, yield)
	}

	for node := range n.GlobNodes(alt, dirsOnly) {
		if !yield(node) {
			return false
		}
	}
	return true
}

// globParentOperator implements the `..` branch (spec.md §4.3.3 step 3):
// it resolves the segments before the first `..`, walks up n consecutive
// `..` segments from each, prunes the pre-part nodes under a transactional
// guard on the resulting ancestors, then continues matching any leftover
// segments from each surviving ancestor.
func (n *Node) globParentOperator(parts []string, idx int, dirsOnly bool, yield func(*Node) bool) bool {
	var preNodes []*Node
	if idx == 0 {
		preNodes = []*Node{n}
	} else {
		preNodes = collectAll(n.GlobChildren(strings.Join(parts[:idx], "/"), false))
	}

	steps := 1
	i := idx + 1
	for i < len(parts) && parts[i] == ".." {
		i++
		steps++
	}

	ancestorSet := map[*Node]bool{}
	var ancestors []*Node
	for _, node := range preNodes {
		a := node.Ancestor(steps)
		if !ancestorSet[a] {
			ancestorSet[a] = true
			ancestors = append(ancestors, a)
		}
	}
	sortBySplitPath(ancestors)

	for _, a := range ancestors {
		a.pruneGuard++
	}
	for _, node := range preNodes {
		node.Prune()
	}
	for _, a := range ancestors {
		a.pruneGuard--
	}

	leftover := strings.Join(parts[i:], "/")
	if leftover != "" {
		for _, parent := range ancestors {
			for node := range parent.GlobChildren(leftover, dirsOnly) {
				if !yield(node) {
					return false
				}
			}
		}
		return true
	}

	for _, parent := range ancestors {
		if !yield(parent) {
			return false
		}
	}
	return true
}

// globRecursiveOperator implements the `**` branch (spec.md §4.3.3 step
// 4): it expands the segments before `**` into quasi subtrees, then
// matches any leftover segments against every descendant, or yields the
// descendants directly when there is no leftover.
func (n *Node) globRecursiveOperator(parts []string, idx int, dirsOnly bool, yield func(*Node) bool) bool {
	var preNodes []*Node
	if idx == 0 {
		preNodes = []*Node{n}
	} else {
		preNodes = collectAll(n.GlobNodes(strings.Join(parts[:idx], "/"), false))
	}

	leftover := strings.Join(parts[idx+1:], "/")

	for _, node := range preNodes {
		node.Expand()

		if leftover != "" {
			for descendant := range node.Descendants(false) {
				for match := range descendant.GlobChildren(leftover, dirsOnly) {
					if !yield(match) {
						return false
					}
				}
			}
			continue
		}

		for descendant := range node.Descendants(dirsOnly) {
			if !yield(descendant) {
				return false
			}
		}
	}

	return true
}

func indexOf(parts []string, target string) int {
	for i, p := range parts {
		if p == target {
			return i
		}
	}
	return -1
}

func collectAll(seq func(yield func(*Node) bool)) []*Node {
	var out []*Node
	seq(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

func sortBySplitPath(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return lessSegments(pathutil.SplitPath(nodes[i].path), pathutil.SplitPath(nodes[j].path))
	})
}

// LessPath reports whether a sorts before b by split_path segment order,
// the tie-break rule used throughout the engine's output (group lists,
// weight tables).
func LessPath(a, b string) bool {
	return lessSegments(pathutil.SplitPath(a), pathutil.SplitPath(b))
}

func lessSegments(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
