//go:build !windows

// Package pathutil provides the cross-platform path primitives the tree
// engine and glob resolver are built on: segment splitting, separator
// stripping, joining, absolute resolution relative to a working directory,
// and a directory listing that never fails.
//
// This file covers POSIX-style systems (no alternate separator, no drive
// letters). See pathutil_windows.go for the drive-letter/long-path variant.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Sep is the path separator on this platform.
const Sep = string(filepath.Separator)

// DefaultPath is the path substituted for an empty root: the filesystem
// root itself.
const DefaultPath = Sep

// SplitPath splits p into its path segments.
func SplitPath(p string) []string {
	return strings.Split(p, Sep)
}

// StripPath removes leading and trailing separators from p.
func StripPath(p string) string {
	return strings.Trim(p, Sep)
}

// JoinPath joins base with segs, stripping separators from each segment
// first. An empty base joins the segments alone.
func JoinPath(base string, segs ...string) string {
	stripped := make([]string, 0, len(segs)+1)
	if base != "" {
		stripped = append(stripped, base)
	}
	for _, s := range segs {
		stripped = append(stripped, strings.Trim(s, Sep))
	}
	return filepath.Join(stripped...)
}

// Absolute resolves p to an absolute, normalized path. cwd supplies the
// base when p is relative. An empty p always resolves to "".
func Absolute(cwd, p string) string {
	if p == "" {
		return ""
	}

	var resolved string
	switch {
	case cwd == "":
		resolved = p
	case filepath.IsAbs(p):
		resolved = p
	default:
		resolved = filepath.Join(filepath.Clean(cwd), p)
	}

	if resolved == "" {
		return ""
	}

	return Sep + strings.Trim(filepath.Clean(resolved), Sep)
}

// ListPath lists the direct children of directory p. It never fails: a
// missing, unreadable, empty, or non-directory path yields an empty list.
func ListPath(p string) []string {
	if p == "" {
		return nil
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		return nil
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	return names
}
