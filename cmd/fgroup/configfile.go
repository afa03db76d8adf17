package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/crystalix007/fgroup"
	"github.com/crystalix007/fgroup/internal/pathutil"
)

// fileConfig is what a YAML config file contributes to a run: everything
// group_from() (original_source/fgroup/file.py) would otherwise read
// straight off the config dict.
type fileConfig struct {
	Root      string
	Patterns  fgroup.PatternMap
	Overrides map[string]string
}

// rawConfig mirrors the YAML document's top-level keys. Files is decoded as
// a raw yaml.Node, not a map, so decodePatternMap can preserve declaration
// order — see PatternMap's doc comment for why order matters.
type rawConfig struct {
	Root               string            `yaml:"root"`
	ConfigRelativeRoot bool              `yaml:"config_relative_root"`
	Overrides          map[string]string `yaml:"overrides"`
	Files              yaml.Node         `yaml:"files"`
}

// loadConfig reads and validates the config file at path, the way
// group_from checked the parsed dict's key set and value shapes.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %q not found", path)
		}
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	var raw rawConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid config: config is not a valid yaml file: %w", err)
	}

	patterns, err := decodePatternMap(&raw.Files)
	if err != nil {
		return nil, err
	}

	root := raw.Root
	if root == "" {
		root = "."
	}

	if raw.ConfigRelativeRoot {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining working directory: %w", err)
		}

		configDir := filepath.Dir(pathutil.Absolute(cwd, path))
		root = pathutil.Absolute(configDir, root)
	}

	return &fileConfig{Root: root, Patterns: patterns, Overrides: raw.Overrides}, nil
}

// decodePatternMap converts a YAML mapping node into an ordered PatternMap,
// recursing into nested mappings. A nil or zero node (no "files" key in the
// document) yields an empty PatternMap.
func decodePatternMap(node *yaml.Node) (fgroup.PatternMap, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid config: files must be a dictionary")
	}

	patterns := make(fgroup.PatternMap, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag == "!!null" {
			return nil, fmt.Errorf("invalid config: found non-string key in files")
		}

		if err := validateGlobKey(keyNode.Value); err != nil {
			return nil, err
		}

		switch valNode.Kind {
		case yaml.ScalarNode:
			patterns = append(patterns, fgroup.PatternEntry{Pattern: keyNode.Value, Value: valNode.Value})
		case yaml.MappingNode:
			nested, err := decodePatternMap(valNode)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, fgroup.PatternEntry{Pattern: keyNode.Value, Value: nested})
		default:
			return nil, fmt.Errorf("invalid config: value is not str or dict for key %q", keyNode.Value)
		}
	}

	return patterns, nil
}

// validateGlobKey gives a config author an early, precise syntax error
// instead of a vague one from deep inside the tree engine. It does not
// perform the actual matching (see DESIGN.md for why doublestar.Glob can't
// be used as the resolver itself); it only validates shell-glob syntax
// per ", "-separated alternative.
func validateGlobKey(key string) error {
	for _, alt := range strings.Split(key, ", ") {
		if alt == "" {
			continue // caught with a better message by fgroup.Group itself
		}
		if !doublestar.ValidatePattern(alt) {
			return fmt.Errorf("invalid config: bad glob %q", alt)
		}
	}
	return nil
}
