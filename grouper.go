package fgroup

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/crystalix007/fgroup/internal/filetree"
)

// grouper is the orchestrator grounded on original_source/fgroup/grouper.py's
// FileGrouper: it owns the tree, drives load()/walk(), and accumulates the
// groups/weights output maps. Group() is the only thing that constructs one.
type grouper struct {
	tree      *filetree.Tree
	absolute  bool
	overrides map[string]string

	groups  map[string][]string
	weights map[string]int
}

func newGrouper(cwd, root string, absolute, distinct bool, overrides map[string]string) *grouper {
	g := &grouper{
		absolute:  absolute,
		overrides: overrides,
		groups:    map[string][]string{},
		weights:   map[string]int{},
	}
	g.tree = filetree.New(cwd, root, distinct, g.addToGroup)
	return g
}

// run loads patterns into the tree, resolves any unmatched catch-all in
// non-distinct mode, and sorts every group's path list.
func (g *grouper) run(patterns PatternMap) error {
	if err := g.load(g.tree.Root(), patterns); err != nil {
		return err
	}

	if !g.tree.Distinct() {
		g.tree.Root().Visit(nil)
		g.walk(g.tree.Root())
	}

	for _, paths := range g.groups {
		sort.Slice(paths, func(i, j int) bool { return filetree.LessPath(paths[i], paths[j]) })
	}

	return nil
}

func (g *grouper) result() *Result {
	return &Result{Groups: g.groups, Weights: g.weights}
}

// load walks patterns, matching each glob key against parent and either
// visiting the matches with the named group (string values) or recursing
// into a nested PatternMap scoped to matched directories.
func (g *grouper) load(parent *filetree.Node, patterns PatternMap) error {
	for _, entry := range patterns {
		switch data := entry.Value.(type) {
		case string:
			group := g.override(data)
			for child := range parent.GlobChildren(entry.Pattern, false) {
				child.Visit(&group)
			}
		case PatternMap:
			for child := range parent.GlobChildren(entry.Pattern, true) {
				if err := g.load(child, data); err != nil {
					return err
				}
				// Visit as DEFAULT so a "*" rule at this same level doesn't
				// re-visit (and so override) a folder already scoped here.
				def := filetree.DefaultGroup
				child.Visit(&def)
			}
		default:
			return &Error{
				Kind: KindInput,
				Message: fmt.Sprintf(
					"invalid config: value is not str or map for key %q", entry.Pattern,
				),
			}
		}
	}

	return nil
}

// walk records every node's weight and, for a node carrying a group, adds
// it to that group's path list. A visited container node's group is
// cleared to nil, so the walk descends into its children instead.
func (g *grouper) walk(node *filetree.Node) {
	g.weights[g.relativize(node.Path())] = node.Weight()

	if group, ok := node.Group(); ok {
		g.addToGroup(group, node.Path())
		return
	}

	for _, child := range node.Children() {
		g.walk(child)
	}
}

// addToGroup is also passed to filetree.New as the distinct-mode
// AssignFunc, so a distinct tree can append to a group the moment a node
// commits to one, without waiting for a final walk.
func (g *grouper) addToGroup(group, path string) {
	g.groups[group] = append(g.groups[group], g.relativize(path))
}

func (g *grouper) relativize(path string) string {
	if g.absolute || g.tree.Root().Path() == "" {
		return path
	}

	rel, err := filepath.Rel(g.tree.Root().Path(), path)
	if err != nil {
		return path
	}

	return rel
}

func (g *grouper) override(group string) string {
	if replacement, ok := g.overrides[group]; ok {
		return replacement
	}
	return group
}
