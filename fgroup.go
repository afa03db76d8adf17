// Package fgroup classifies every file and directory under a root path
// into named groups, using a nested map of glob patterns to group names.
//
// The engine is a lazy, in-memory tree (internal/filetree) populated by
// resolving each pattern against the filesystem as it is encountered;
// untouched subtrees are never enumerated further than the shape needed to
// decide their group, so grouping a large tree with a narrow pattern set
// stays cheap.
//
//	res, err := fgroup.Group(fgroup.Options{
//		Root: "/srv/project",
//		Patterns: fgroup.PatternMap{
//			{Pattern: "*.go", Value: "source"},
//			{Pattern: "*.md", Value: "docs"},
//		},
//	})
//
// Group is the only entry point; cmd/fgroup reads the pattern map (plus
// root/overrides) out of a YAML config file, takes extra globs from its -m
// flags, and hands them to Group untouched — this package never imports an
// encoding format.
package fgroup

import (
	"os"

	"github.com/crystalix007/fgroup/internal/filetree"
	"github.com/crystalix007/fgroup/internal/pathutil"
)

// PatternEntry is one (glob, value) pair in a PatternMap. Value is either a
// group name (string) or a nested PatternMap scoped to directories the
// pattern matches.
type PatternEntry struct {
	Pattern string
	Value   any
}

// PatternMap is a recursive, ORDERED mapping whose keys are glob strings
// (possibly `, `-delimited alternations) and whose values are either a
// group name or another PatternMap scoped to directories the key matches.
//
// Order matters and is caller-controlled (unlike a Go map): §4.6 specifies
// that overlapping patterns are resolved first-match-wins, so entry order
// is the tie-break. A plain map[string]any cannot carry that, which is why
// this is a slice rather than a map.
type PatternMap []PatternEntry

// ExtraGlob is a single manually supplied (pattern, group) pair, merged on
// top of a pattern map with priority over any config-file entry using the
// same key.
type ExtraGlob struct {
	Pattern string
	Group   string
}

// Options configures a single grouping run.
type Options struct {
	// Root is the directory everything is grouped under. Relative paths
	// are resolved against the process's working directory. Empty means
	// the filesystem root.
	Root string

	// Patterns is the nested pattern map to load into the tree.
	Patterns PatternMap

	// Absolute, when true, emits paths as absolute rather than relative
	// to Root.
	Absolute bool

	// Distinct selects distinct-mode semantics (§4.5): a matched node
	// does not block its descendants from matching later patterns, and
	// unmatched paths are not placed in the default group.
	Distinct bool

	// Overrides maps an assigned group name to a replacement. The
	// default group always maps to itself regardless of what is
	// supplied here.
	Overrides map[string]string

	// ExtraGlobs are merged into the top of Patterns, taking priority
	// over any existing entry with the same key.
	ExtraGlobs []ExtraGlob
}

// Result is the output of a grouping run.
type Result struct {
	// Groups maps group name to its sorted list of paths.
	Groups map[string][]string

	// Weights maps path to the tree node's final weight.
	Weights map[string]int
}

// Group classifies the filesystem under opts.Root per opts.Patterns,
// returning the resulting group→paths and path→weight maps.
//
// Group returns an *Error (see errors.go) on malformed input or a missing
// root; transient listing failures during traversal are absorbed and do
// not fail the run.
func Group(opts Options) (*Result, error) {
	if err := checkPatternMap(opts.Patterns, "files"); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, &Error{Kind: KindFilesystemFatal, Message: "cannot determine working directory: " + err.Error()}
	}

	root := pathutil.Absolute(cwd, opts.Root)
	if root != "" {
		if _, err := os.Stat(root); err != nil {
			return nil, &Error{Kind: KindFilesystemFatal, Message: "root path \"" + root + "\" not found"}
		}
	}

	overrides := map[string]string{}
	for k, v := range opts.Overrides {
		overrides[k] = v
	}
	overrides[filetree.DefaultGroup] = filetree.DefaultGroup

	patterns := mergeExtraGlobs(opts.Patterns, opts.ExtraGlobs)

	g := newGrouper(cwd, root, opts.Absolute, opts.Distinct, overrides)
	if err := g.run(patterns); err != nil {
		return nil, err
	}

	return g.result(), nil
}
