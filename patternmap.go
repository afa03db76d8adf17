package fgroup

import (
	"fmt"
	"strings"
)

// checkPatternMap type-checks a pattern map the way original_source's
// check_file_tree did: keys must be non-empty and, when split on ", ",
// every alternative must be non-empty too; values must be a group name or
// another PatternMap.
func checkPatternMap(patterns PatternMap, path string) error {
	for _, entry := range patterns {
		if entry.Pattern == "" {
			return &Error{
				Kind:    KindInput,
				Message: fmt.Sprintf("invalid config: found empty glob at %s", path),
			}
		}

		for _, alt := range strings.Split(entry.Pattern, ", ") {
			if alt == "" {
				return &Error{
					Kind:    KindInput,
					Message: fmt.Sprintf("invalid config: found empty glob at %s -> %s", path, entry.Pattern),
				}
			}
		}

		switch v := entry.Value.(type) {
		case string:
			continue
		case PatternMap:
			if err := checkPatternMap(v, path+" -> "+entry.Pattern); err != nil {
				return err
			}
		default:
			return &Error{
				Kind: KindInput,
				Message: fmt.Sprintf(
					"invalid config: value is not str or map for key %s -> %s", path, entry.Pattern,
				),
			}
		}
	}

	return nil
}

// mergeExtraGlobs merges extras on top of patterns: extras are added first
// (giving them priority, per §4.6), followed by any config entry whose
// pattern wasn't already supplied as an extra.
func mergeExtraGlobs(patterns PatternMap, extras []ExtraGlob) PatternMap {
	if len(extras) == 0 {
		return patterns
	}

	merged := make(PatternMap, 0, len(extras)+len(patterns))
	seen := make(map[string]bool, len(extras))

	for _, ex := range extras {
		merged = append(merged, PatternEntry{Pattern: ex.Pattern, Value: ex.Group})
		seen[ex.Pattern] = true
	}

	for _, entry := range patterns {
		if seen[entry.Pattern] {
			continue
		}
		merged = append(merged, entry)
	}

	return merged
}
