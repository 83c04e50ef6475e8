// Command contestctl is operator tooling for the contest evaluation engine:
// catalog validation, kit inspection, and offline evaluations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "contestctl",
	Short: "Operator tooling for the contest evaluation engine",
	Long: "Contestctl validates kit catalogs, inspects loaded kits, and runs\n" +
		"offline contest evaluations against request files.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(kitsCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
