// Package filetree implements the lazy, in-memory file tree at the heart
// of fgroup: nodes are created on demand as patterns are resolved against
// the filesystem, carry per-node discovery state (visited, expanded,
// collapsed, quasi, prune guard, weight), and support two grouping
// behaviors selected once per tree ("parent-wins" and "distinct").
//
// The extended-glob interpreter (GlobChildren) lives here rather than in
// the glob resolver, because `..` and `**` require live mutation of the
// tree (pruning materialized ancestors, expanding speculative subtrees)
// interleaved with matching.
package filetree

import (
	"os"

	"github.com/crystalix007/fgroup/internal/pathutil"
)

// DefaultGroup is the group assigned to any node not otherwise matched, in
// non-distinct mode.
const DefaultGroup = "unknown"

// AssignFunc is called by a distinct-mode tree whenever a node commits to
// a group, so the caller can record it without a final blanket walk.
type AssignFunc func(group, path string)

// Tree owns every node reachable from Root and the mode (distinct or
// parent-wins) that governs how Visit behaves across the whole tree.
type Tree struct {
	root     *Node
	distinct bool
	assign   AssignFunc
}

// New constructs a tree rooted at rootPath (resolved relative to cwd, the
// same way every other node's path is resolved relative to its parent).
// assign is only invoked when distinct is true, and may be nil otherwise.
func New(cwd, rootPath string, distinct bool, assign AssignFunc) *Tree {
	t := &Tree{distinct: distinct, assign: assign}
	t.root = &Node{
		tree:      t,
		name:      rootPath,
		path:      pathutil.Absolute(cwd, rootPath),
		collapsed: true,
	}
	return t
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// Distinct reports whether this tree uses distinct-mode visit semantics.
func (t *Tree) Distinct() bool { return t.distinct }

// Node is one entry in the tree: a real or speculative filesystem path.
type Node struct {
	tree   *Tree
	parent *Node
	name   string
	path   string

	children     map[string]*Node
	childOrder   []string
	group        *string
	visited      bool
	expanded     bool
	collapsed    bool
	quasi        bool
	pruneGuard   int
	weight       int
}

// newChild creates and registers a child of parent, inheriting quasi from
// the parent unless overridden, and computing its weight from its depth
// (its own construction counts as one unit of weight per ancestor, per
// the reference engine's per-node weight accounting). A quasi child marks
// every ancestor as no longer collapsed.
func newChild(parent *Node, name string, group *string, quasi bool) *Node {
	n := &Node{
		tree:      parent.tree,
		parent:    parent,
		name:      name,
		path:      pathutil.Absolute(parent.path, name),
		group:     group,
		visited:   group != nil,
		expanded:  group != nil,
		collapsed: true,
		quasi:     quasi,
	}

	if parent.children == nil {
		parent.children = make(map[string]*Node)
	}
	parent.children[name] = n
	parent.childOrder = append(parent.childOrder, name)

	for cursor := n.parent; cursor != nil; cursor = cursor.parent {
		n.weight++
		if quasi {
			cursor.collapsed = false
		}
	}

	return n
}

// Path returns the node's absolute resolved path.
func (n *Node) Path() string { return n.path }

// Name returns the node's final path segment.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Weight returns the node's current weight.
func (n *Node) Weight() int { return n.weight }

// Group returns the node's assigned group and whether one is set.
func (n *Node) Group() (string, bool) {
	if n.group == nil {
		return "", false
	}
	return *n.group, true
}

// Visited reports whether the node's classification is finalized.
func (n *Node) Visited() bool { return n.visited }

// Children returns the node's children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.childOrder))
	for _, name := range n.childOrder {
		out = append(out, n.children[name])
	}
	return out
}

// Prune deletes this node if it is unvisited, childless, unguarded, and
// not the root, folding its weight into its parent and recursing upward.
func (n *Node) Prune() {
	if n.pruneGuard > 0 || len(n.children) > 0 || n.visited || n.parent == nil {
		return
	}

	n.parent.weight += n.weight
	if _, ok := n.parent.children[n.name]; ok {
		delete(n.parent.children, n.name)
		n.parent.childOrder = removeName(n.parent.childOrder, n.name)
		n.parent.Prune()
	}
}

func removeName(order []string, name string) []string {
	for i, v := range order {
		if v == name {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// Locate walks from this node through segments, creating missing
// children, and returns the located node. If any intermediate or final
// node is already visited, Locate returns nil and the caller must skip
// this path.
func (n *Node) Locate(segments []string) *Node {
	cursor := n
	for _, part := range segments {
		cursor = cursor.GetChild(part, nil, nil)
		if cursor.visited {
			return nil
		}
	}
	return cursor
}

// GetChild returns the existing child named name, or creates one. A newly
// created child inherits quasi from its parent unless quasi is non-nil.
func (n *Node) GetChild(name string, group *string, quasi *bool) *Node {
	if child, ok := n.children[name]; ok {
		return child
	}

	effectiveQuasi := n.quasi
	if quasi != nil {
		effectiveQuasi = *quasi
	}

	return newChild(n, name, group, effectiveQuasi)
}

// Ancestors yields every ancestor of this node, nearest first.
func (n *Node) Ancestors() func(yield func(*Node) bool) {
	return func(yield func(*Node) bool) {
		for cursor := n.parent; cursor != nil; cursor = cursor.parent {
			if !yield(cursor) {
				return
			}
		}
	}
}

// Ancestor returns the nth strict ancestor, or the root if traversal
// reaches it before n steps.
func (n *Node) Ancestor(steps int) *Node {
	cursor := n
	for i := 0; i < steps; i++ {
		next := cursor.parent
		if next == nil {
			return cursor
		}
		cursor = next
	}
	return cursor
}

// Descendants yields a pre-order traversal of this node's unvisited
// descendants, including itself. When excludeLeaves is set, childless
// nodes are skipped.
func (n *Node) Descendants(excludeLeaves bool) func(yield func(*Node) bool) {
	return func(yield func(*Node) bool) {
		n.descendants(excludeLeaves, yield)
	}
}

func (n *Node) descendants(excludeLeaves bool, yield func(*Node) bool) bool {
	if n.visited {
		return true
	}

	if !excludeLeaves || len(n.children) > 0 {
		if !yield(n) {
			return false
		}
	}

	for _, name := range n.childOrder {
		child := n.children[name]
		if child.visited {
			continue
		}
		if !child.descendants(excludeLeaves, yield) {
			return false
		}
	}

	return true
}

// Observe clears quasi on this node and its ancestor chain, stopping at
// the first ancestor that is already non-quasi.
func (n *Node) Observe() {
	if !n.quasi {
		return
	}

	n.quasi = false
	for cursor := n.parent; cursor != nil; cursor = cursor.parent {
		if !cursor.quasi {
			break
		}
		cursor.quasi = false
	}
}

// Collapse removes every quasi descendant, folding its weight into its
// parent. A no-op if the node is already collapsed or visited.
func (n *Node) Collapse() {
	if n.collapsed || n.visited {
		return
	}

	for _, name := range append([]string(nil), n.childOrder...) {
		child := n.children[name]
		if child.quasi {
			n.weight += child.weight
			delete(n.children, name)
			n.childOrder = removeName(n.childOrder, name)
		} else if !child.collapsed {
			child.Collapse()
		}
	}

	n.expanded = false
	n.collapsed = true
}

// Expand populates this node with quasi children for every undiscovered
// filesystem entry, recursively. A no-op if already expanded or visited.
func (n *Node) Expand() {
	if n.expanded || n.visited {
		return
	}

	info, err := os.Stat(n.path)
	isDir := err == nil && info.IsDir()

	if isDir {
		quasi := true
		for _, name := range pathutil.ListPath(n.path) {
			n.GetChild(name, nil, &quasi).Expand()
		}
	}

	n.expanded = true

	if isDir && n.collapsed {
		n.collapsed = false
		for cursor := n.parent; cursor != nil; cursor = cursor.parent {
			cursor.collapsed = false
		}
	}
}

// Visit finalizes this node's classification, dispatching to the
// parent-wins or distinct behavior depending on the owning tree's mode.
func (n *Node) Visit(group *string) {
	if n.tree.distinct {
		n.visitDistinct(group)
		return
	}
	n.visitParentWins(group)
}

// visitParentWins implements the non-distinct variant: visiting a node
// freezes its whole subtree, assigning every descendant the same
// effective group unless already matched more specifically first.
func (n *Node) visitParentWins(group *string) {
	if n.visited {
		return
	}

	n.Observe()
	n.Collapse()

	g := effectiveGroup(group, n.group)

	if len(n.children) == 0 {
		n.visited = true
		n.group = &g
		return
	}

	items := pathutil.ListPath(n.path)
	if len(items) > 0 {
		for _, name := range items {
			n.GetChild(name, &g, nil).Visit(&g)
		}
	} else {
		for _, name := range n.childOrder {
			n.children[name].Visit(&g)
		}
	}

	n.visited = true
	n.expanded = true
	n.collapsed = true
	n.group = nil
}

// visitDistinct implements the distinct variant (spec.md §4.5): a node's
// own group is set independently of its descendants, and visited is never
// set, so later patterns can still match within this subtree.
func (n *Node) visitDistinct(group *string) {
	n.Observe()
	n.Collapse()

	if n.group != nil {
		return
	}

	g := effectiveGroup(group, nil)
	n.group = &g
	if n.tree.assign != nil {
		n.tree.assign(g, n.path)
	}
}

// effectiveGroup chooses the group to assign: the explicitly requested
// group, else the node's own prior group, else the default.
func effectiveGroup(requested, prior *string) string {
	if requested != nil {
		return *requested
	}
	if prior != nil {
		return *prior
	}
	return DefaultGroup
}
