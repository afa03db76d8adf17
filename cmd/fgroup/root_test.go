package main

import "testing"

func TestParseManuals(t *testing.T) {
	extras, err := parseManuals([]string{"*.go:source", "*.md:docs"})
	if err != nil {
		t.Fatalf("parseManuals: %v", err)
	}
	if len(extras) != 2 || extras[0].Pattern != "*.go" || extras[0].Group != "source" {
		t.Fatalf("extras = %+v", extras)
	}
}

// LastIndex splitting preserves a colon inside the pattern (e.g. a Windows
// drive letter), assigning only the trailing segment to the group.
func TestParseManualsSplitsOnLastColon(t *testing.T) {
	extras, err := parseManuals([]string{"C:/src/*.go:source"})
	if err != nil {
		t.Fatalf("parseManuals: %v", err)
	}
	if extras[0].Pattern != "C:/src/*.go" || extras[0].Group != "source" {
		t.Fatalf("extras = %+v", extras)
	}
}

func TestParseManualsRejectsMissingColon(t *testing.T) {
	if _, err := parseManuals([]string{"no-colon-here"}); err == nil {
		t.Fatalf("expected an error for a manual glob with no colon")
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := parsePairs([]string{"a:b", "c:d"}, "override")
	if err != nil {
		t.Fatalf("parsePairs: %v", err)
	}
	if pairs["a"] != "b" || pairs["c"] != "d" {
		t.Fatalf("pairs = %v", pairs)
	}
}

func TestParsePairsEmpty(t *testing.T) {
	pairs, err := parsePairs(nil, "override")
	if err != nil || pairs != nil {
		t.Fatalf("parsePairs(nil) = (%v, %v), want (nil, nil)", pairs, err)
	}
}

func TestResolveConfigRequiresGlobsWithoutConfig(t *testing.T) {
	prevConfig := flagConfig
	flagConfig = ""
	defer func() { flagConfig = prevConfig }()

	if _, err := resolveConfig(nil); err == nil {
		t.Fatalf("expected an error when no config and no manual globs are given")
	}
}
