//go:build windows

// Package pathutil — Windows variant: drive letters are their own path
// segment and absolute paths carry the `\\?\` long-path sentinel prefix.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Sep is the path separator on this platform.
const Sep = string(filepath.Separator)

const altSep = "/"
const seps = Sep + altSep + "?"

// DefaultPath is the path substituted for an empty root: the long-path
// sentinel joined with the filesystem root of the current drive.
var DefaultPath = `\\?\` + func() string {
	abs, err := filepath.Abs(Sep)
	if err != nil {
		return Sep
	}
	return abs
}()

// SplitPath splits p into its path segments. A drive letter, if present, is
// the first segment.
func SplitPath(p string) []string {
	normalized := strings.ReplaceAll(p, altSep, Sep)
	drive, subpath := filepath.VolumeName(normalized), normalized

	if drive != "" {
		subpath = strings.TrimPrefix(normalized, drive)
		segs := strings.Split(strings.Trim(subpath, seps), Sep)
		return append([]string{strings.Trim(drive, seps)}, segs...)
	}

	return strings.Split(strings.Trim(subpath, seps), Sep)
}

// StripPath removes leading and trailing separator/sentinel characters
// from p, normalizing the alternate separator to the native one.
func StripPath(p string) string {
	return strings.Trim(strings.ReplaceAll(p, altSep, Sep), seps)
}

// JoinPath joins base with segs, stripping separators from each segment
// first. An empty base joins the segments alone.
func JoinPath(base string, segs ...string) string {
	stripped := make([]string, 0, len(segs)+1)
	if base != "" {
		stripped = append(stripped, base)
	}
	for _, s := range segs {
		stripped = append(stripped, strings.Trim(s, seps))
	}
	return filepath.Join(stripped...)
}

// Absolute resolves p to an absolute, normalized path prefixed with the
// long-path sentinel. cwd supplies the base when p is relative. An empty p
// always resolves to "".
func Absolute(cwd, p string) string {
	if p == "" {
		return ""
	}

	var resolved string
	switch {
	case cwd == "":
		if len(p) > 0 && strings.ContainsAny(p[:1], `\/`) {
			abs, err := filepath.Abs(p)
			if err == nil {
				resolved = abs
			} else {
				resolved = p
			}
		} else {
			resolved = p
		}
	default:
		resolved = filepath.Join(filepath.Clean(cwd), p)
	}

	drive, subpath := filepath.VolumeName(`\\?\` + strings.Trim(resolved, seps)), ""
	full := `\\?\` + strings.Trim(resolved, seps)
	subpath = strings.TrimPrefix(full, drive)

	if subpath != "" {
		return drive + subpath
	}
	if strings.HasSuffix(drive, Sep) {
		return drive
	}
	return drive + Sep
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
