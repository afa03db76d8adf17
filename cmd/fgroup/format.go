package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crystalix007/fgroup"
	"github.com/crystalix007/fgroup/internal/filetree"
)

// writeResult dispatches to the weight-table report (-t), a single group
// (-g), or the full group map, following original_source/fgroup/__init__.py's
// main() output switch.
func writeResult(cmd *cobra.Command, result *fgroup.Result, args []string) error {
	flags := cmd.Flags()
	topGiven := flags.Changed("top")
	groupGiven := flags.Changed("group")

	if topGiven && groupGiven {
		return cliError("options -t and -g are not compatible with each other")
	}

	var output string
	if len(args) > 0 {
		output = args[0]
	}

	format := resolveFormat(flagFormat, output)

	var indent *int
	if flags.Changed("indent") {
		indent = &flagIndent
	}

	if format == "folder" {
		if output == "" {
			return cliError("output format \"folder\" requires an output path")
		}
		if topGiven {
			return cliError("option -t does not support output format \"folder\"")
		}
		return writeFolder(output, result, flagGroup)
	}

	w, closeW, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeW()

	useColor := output == "" && stdoutIsTerminal()

	switch {
	case topGiven:
		top := defaultTop
		if flags.Changed("top") {
			top = flagTop
		}
		return writeTop(w, result, top, format, indent, useColor)
	case groupGiven:
		paths, ok := result.Groups[flagGroup]
		if !ok {
			return cliError(fmt.Sprintf("no paths were given the group %q", flagGroup))
		}
		return writeGroup(w, paths, format, indent)
	default:
		return writeGroups(w, result.Groups, format, indent, useColor)
	}
}

// resolveFormat mirrors __init__.py's get_format: an explicit -f wins,
// otherwise a directory-shaped or extension-shaped output path infers
// folder/json/yaml, and anything else (including stdout) defaults to text.
func resolveFormat(explicit, output string) string {
	if explicit != "" {
		return explicit
	}
	if output == "" {
		return "text"
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return "folder"
	}
	switch filepath.Ext(output) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "text"
	}
}

func openOutput(output string) (io.Writer, func(), error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", output, err)
	}
	return f, func() { f.Close() }, nil
}

// weightEntry is one row of the -t report: a path and its final weight.
type weightEntry struct {
	Path   string
	Weight int
}

// sortedWeights orders weights descending, breaking ties by split-path
// segment order, matching __init__.py's
// `sorted(weights.most_common(...), key=lambda d: (-d[1], *split_path(d[0])))`.
func sortedWeights(weights map[string]int) []weightEntry {
	entries := make([]weightEntry, 0, len(weights))
	for path, weight := range weights {
		entries = append(entries, weightEntry{Path: path, Weight: weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return filetree.LessPath(entries[i].Path, entries[j].Path)
	})
	return entries
}

func writeTop(w io.Writer, result *fgroup.Result, top int, format string, indent *int, useColor bool) error {
	entries := sortedWeights(result.Weights)
	if top > 0 && top < len(entries) {
		entries = entries[:top]
	}

	switch format {
	case "json":
		return encodeJSON(w, topPairs(entries), indent)
	case "yaml":
		return encodeYAML(w, topPairs(entries), indent)
	default:
		return writeTopText(w, entries, useColor)
	}
}

// topPairs converts entries to the [path, weight] 2-tuples the original
// tool's json.dump/yaml.safe_dump emitted for -t.
func topPairs(entries []weightEntry) [][2]any {
	pairs := make([][2]any, len(entries))
	for i, e := range entries {
		pairs[i] = [2]any{e.Path, e.Weight}
	}
	return pairs
}

func writeTopText(w io.Writer, entries []weightEntry, useColor bool) error {
	if len(entries) == 0 {
		return nil
	}

	maxLen := len(fmt.Sprintf("%d", entries[0].Weight))
	styles := plainOrColorStyles(useColor)

	for _, e := range entries {
		weightStr := fmt.Sprintf("%*d", maxLen, e.Weight)
		if _, err := fmt.Fprintf(w, "%s  %s\n", styles.Weight.Render(weightStr), e.Path); err != nil {
			return err
		}
	}
	return nil
}

func writeGroup(w io.Writer, paths []string, format string, indent *int) error {
	switch format {
	case "json":
		return encodeJSON(w, paths, indent)
	case "yaml":
		return encodeYAML(w, paths, indent)
	default:
		for _, p := range paths {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeGroups(w io.Writer, groups map[string][]string, format string, indent *int, useColor bool) error {
	switch format {
	case "json":
		return encodeJSON(w, sortedGroupMap(groups), indent)
	case "yaml":
		return encodeYAML(w, sortedGroupNode(groups), indent)
	default:
		return writeGroupsText(w, groups, useColor)
	}
}

func writeGroupsText(w io.Writer, groups map[string][]string, useColor bool) error {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	styles := plainOrColorStyles(useColor)

	for _, name := range names {
		if _, err := fmt.Fprintln(w, styles.Header.Render(name)); err != nil {
			return err
		}
		for _, p := range groups[name] {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeFolder(dir string, result *fgroup.Result, group string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("creating %q: %w", dir, err)
		}
	}

	if group != "" {
		paths, ok := result.Groups[group]
		if !ok {
			return cliError(fmt.Sprintf("no paths were given the group %q", group))
		}
		return writeGroupFile(dir, group, paths)
	}

	for name, paths := range result.Groups {
		if err := writeGroupFile(dir, name, paths); err != nil {
			return err
		}
	}
	return nil
}

func writeGroupFile(dir, name string, paths []string) error {
	f, err := os.Create(filepath.Join(dir, name+".txt"))
	if err != nil {
		return fmt.Errorf("creating group file for %q: %w", name, err)
	}
	defer f.Close()

	for _, p := range paths {
		if _, err := fmt.Fprintln(f, p); err != nil {
			return err
		}
	}
	return nil
}

func encodeJSON(w io.Writer, v any, indent *int) error {
	var data []byte
	var err error
	if indent != nil {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", *indent))
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func encodeYAML(w io.Writer, v any, indent *int) error {
	enc := yaml.NewEncoder(w)
	n := defaultIndent
	if indent != nil {
		n = *indent
	}
	if n > 0 {
		enc.SetIndent(n)
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// sortedGroupMap returns groups unchanged; encoding/json sorts string map
// keys automatically (this just documents that, matching sort_keys=True).
func sortedGroupMap(groups map[string][]string) map[string][]string {
	return groups
}

// sortedGroupNode builds an explicit mapping *yaml.Node with keys in sorted
// order, since a plain Go map has no deterministic order for yaml.v3 to
// preserve the way encoding/json sorts map keys for us automatically.
func sortedGroupNode(groups map[string][]string) *yaml.Node {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range names {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		seqNode := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, p := range groups[name] {
			seqNode.Content = append(seqNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p})
		}
		node.Content = append(node.Content, keyNode, seqNode)
	}
	return node
}

func plainOrColorStyles(useColor bool) styles {
	if useColor {
		return newStyles()
	}
	return noStyles()
}
