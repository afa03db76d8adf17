// Command fgroup classifies files and directories under a root path into
// named groups using glob patterns, reading its pattern map from a YAML
// config file, manual "-m pattern:group" overrides, or both.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
