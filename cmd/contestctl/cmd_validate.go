package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parkfair/contest-engine/internal/catalog"
)

var validateFlags struct {
	catalogPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a kit catalog file",
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.catalogPath, "catalog", "", "Path to a kit catalog YAML (default: embedded catalog)")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	registry, err := catalog.Load(validateFlags.catalogPath)
	if err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Catalog OK: %d kits\n", registry.Len())
	for _, code := range registry.Codes() {
		kit := registry.Get(code)
		fmt.Fprintf(out, "  %-22s %s (%d arguments)\n", code, kit.Name, len(kit.Arguments))
	}
	return nil
}
