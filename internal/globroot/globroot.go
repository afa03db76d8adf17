// Package globroot resolves a single glob pattern against a root directory.
// It supports `*`, `?`, character classes, and `**` (zero or more path
// segments), and always includes hidden (dot-prefixed) entries — unlike
// doublestar's shell-style matching, there is no special-casing of a
// leading `.` here, so patterns never need to target hidden entries
// explicitly.
package globroot

import (
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/crystalix007/fgroup/internal/pathutil"
)

// GlobRoot matches pattern against the filesystem rooted at root, yielding
// matched paths relative to root (or, when root is empty, relative to the
// filesystem root that was substituted for it).
//
// An empty pattern always yields nothing. If root is also empty and
// pattern strips down to nothing but separators, a single sentinel path
// (the filesystem root) is yielded instead, since the caller's pattern was
// asking for "root" itself. When dirsOnly is set, only directories match,
// and the result never carries a trailing separator.
func GlobRoot(root, pattern string, dirsOnly bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		if pattern == "" {
			return
		}

		nglob := pathutil.StripPath(pattern)
		nroot := root

		if root == "" {
			if nglob == "" {
				yield(pathutil.DefaultPath)
				return
			}
			nroot = pathutil.DefaultPath
		}

		if nglob == "" {
			return
		}

		if nroot == "" || nroot[len(nroot)-1:] != pathutil.Sep {
			nroot += pathutil.Sep
		}

		segments := splitGlobSegments(nglob)
		globWalk(nroot, "", segments, dirsOnly, yield)
	}
}

// splitGlobSegments splits a stripped glob pattern on the native separator.
func splitGlobSegments(nglob string) []string {
	segs := pathutil.SplitPath(nglob)
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// globWalk matches segments against the filesystem starting at absDir
// (whose path relative to the glob root is relPrefix), yielding matches to
// yield. It returns false once yield asks to stop.
func globWalk(absDir, relPrefix string, segments []string, dirsOnly bool, yield func(string) bool) bool {
	if len(segments) == 0 {
		return true
	}

	seg := segments[0]
	rest := segments[1:]

	// A "." component is not matched against directory entries (no real
	// directory is ever named "."); it stays in the current directory,
	// same as real filesystem glob semantics.
	if seg == "." {
		if len(rest) == 0 {
			return yield(relPrefix)
		}
		return globWalk(absDir, relPrefix, rest, dirsOnly, yield)
	}

	if seg == "**" {
		return globWalkRecursive(absDir, relPrefix, rest, dirsOnly, yield)
	}

	for _, name := range pathutil.ListPath(absDir) {
		ok, err := path.Match(seg, name)
		if err != nil || !ok {
			continue
		}

		childAbs := filepath.Join(absDir, name)
		childRel := joinRel(relPrefix, name)

		info, err := os.Lstat(childAbs)
		isDir := err == nil && info.IsDir()

		if len(rest) == 0 {
			if dirsOnly && !isDir {
				continue
			}
			if !yield(childRel) {
				return false
			}
			continue
		}

		if !isDir {
			continue
		}
		if !globWalk(childAbs, childRel, rest, dirsOnly, yield) {
			return false
		}
	}

	return true
}

// globWalkRecursive implements the `**` segment: zero or more directory
// levels, including none, before matching rest.
func globWalkRecursive(absDir, relPrefix string, rest []string, dirsOnly bool, yield func(string) bool) bool {
	if len(rest) == 0 {
		if !dirsOnly || relPrefix != "" {
			if !yield(relPrefix) {
				return false
			}
		}
	} else if !globWalk(absDir, relPrefix, rest, dirsOnly, yield) {
		return false
	}

	for _, name := range pathutil.ListPath(absDir) {
		childAbs := filepath.Join(absDir, name)

		info, err := os.Lstat(childAbs)
		if err != nil || !info.IsDir() {
			continue
		}

		childRel := joinRel(relPrefix, name)
		segs := append([]string{"**"}, rest...)
		if !globWalk(childAbs, childRel, segs, dirsOnly, yield) {
			return false
		}
	}

	return true
}

func joinRel(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
