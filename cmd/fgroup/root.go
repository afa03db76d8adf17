package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crystalix007/fgroup"
)

const (
	progName      = "fgroup"
	defaultTop    = 10
	defaultIndent = 4
)

var (
	flagAbsolute bool
	flagDistinct bool
	flagConfig   string
	flagManual   []string
	flagRoot     string
	flagFormat   string
	flagTop      int
	flagGroup    string
	flagIndent   int
	flagOverride []string
)

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [output]", progName),
	Short: "A helpful cross-platform utility for grouping files across many locations",
	Long: "Groups paths based on the globs given through the -m option and the \"config\" " +
		"file (-c) if provided. Outputs the result to the given \"output\" path. If a file " +
		"is not matched, it is placed into the default group (\"unknown\").\n\n" +
		"By default, if a parent directory is grouped, none of its children can be. To " +
		"allow them to be grouped separately, use the -d option.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGroup,
}

func init() {
	flags := rootCmd.Flags()

	flags.BoolVarP(&flagAbsolute, "absolute", "a", false,
		"Output paths as absolute paths instead of paths relative to the root path.")
	flags.BoolVarP(&flagDistinct, "distinct", "d", false,
		"If set, a parent folder and its descendants can be given distinct groups. "+
			"Consequently, unmatched paths will not be placed in the default group.")
	flags.StringVarP(&flagConfig, "config", "c", "",
		"A config file used to group various files/folders.")
	flags.StringArrayVarP(&flagManual, "manual", "m", nil,
		`File globs (P) executed on the root path, given as "P:G". Matching paths will `+
			"be given group (G). These have higher priority than the globs in the config file.")
	flags.StringVarP(&flagRoot, "root", "r", ".",
		"Changes the root path where files/folders are grouped from. This setting has "+
			"higher priority than the root set in the config.")
	flags.Lookup("root").NoOptDefVal = ""
	flags.StringVarP(&flagFormat, "format", "f", "",
		`Change the output format used to print out results. One of "text", "json", `+
			`"yaml", or "folder".`)
	flags.IntVarP(&flagTop, "top", "t", 0,
		"Output top N path weights (all: 0). Paths that glob more have a higher weight. "+
			"Not compatible with -g.")
	flags.Lookup("top").NoOptDefVal = strconv.Itoa(defaultTop)
	flags.StringVarP(&flagGroup, "group", "g", "",
		"If set, outputs only the paths in the given group. Not compatible with -t.")
	flags.IntVarP(&flagIndent, "indent", "i", 0,
		`For formats "json" and "yaml", indents and nicely formats output.`)
	flags.Lookup("indent").NoOptDefVal = strconv.Itoa(defaultIndent)
	flags.StringArrayVarP(&flagOverride, "override", "o", nil,
		`A list of group overrides, given as "G:N". Using group G directly will instead `+
			"use group N.")
}

func runGroup(cmd *cobra.Command, args []string) error {
	overrides, err := parsePairs(flagOverride, "override")
	if err != nil {
		return err
	}

	extraGlobs, err := parseManuals(flagManual)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(extraGlobs)
	if err != nil {
		return err
	}

	root := cfg.Root
	if cmd.Flags().Changed("root") {
		root = flagRoot
	}

	mergedOverrides := make(map[string]string, len(cfg.Overrides)+len(overrides))
	for k, v := range cfg.Overrides {
		mergedOverrides[k] = v
	}
	for k, v := range overrides {
		mergedOverrides[k] = v
	}

	result, err := fgroup.Group(fgroup.Options{
		Root:       root,
		Patterns:   cfg.Patterns,
		Absolute:   flagAbsolute,
		Distinct:   flagDistinct,
		Overrides:  mergedOverrides,
		ExtraGlobs: extraGlobs,
	})
	if err != nil {
		return err
	}

	return writeResult(cmd, result, args)
}

// resolveConfig loads flagConfig if given, otherwise falls back to an empty
// pattern map rooted at ".", requiring at least one manual glob (mirroring
// group_from's "no globs given" guard).
func resolveConfig(extraGlobs []fgroup.ExtraGlob) (*fileConfig, error) {
	if flagConfig == "" {
		if len(extraGlobs) == 0 {
			return nil, cliError("no globs given, provide some with -m or supply a config with -c.")
		}
		return &fileConfig{Root: "."}, nil
	}
	return loadConfig(flagConfig)
}

// parseManuals splits "P:G" strings into ExtraGlob pairs, with P and G
// split on the last colon (so Windows drive letters in P survive).
func parseManuals(raw []string) ([]fgroup.ExtraGlob, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	extras := make([]fgroup.ExtraGlob, 0, len(raw))
	for _, m := range raw {
		idx := strings.LastIndex(m, ":")
		if idx < 0 {
			return nil, cliError(fmt.Sprintf("invalid manual %q", m))
		}
		extras = append(extras, fgroup.ExtraGlob{Pattern: m[:idx], Group: m[idx+1:]})
	}
	return extras, nil
}

// parsePairs splits "G:N" strings into a map, used for -o/--override.
func parsePairs(raw []string, flagName string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	pairs := make(map[string]string, len(raw))
	for _, o := range raw {
		idx := strings.LastIndex(o, ":")
		if idx < 0 {
			return nil, cliError(fmt.Sprintf("invalid %s %q", flagName, o))
		}
		pairs[o[:idx]] = o[idx+1:]
	}
	return pairs, nil
}

func cliError(msg string) error {
	return fmt.Errorf("%s: error: %s", progName, msg)
}
