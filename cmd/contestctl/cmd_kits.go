package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parkfair/contest-engine/internal/catalog"
)

var kitsFlags struct {
	catalogPath string
	code        string
}

var kitsCmd = &cobra.Command{
	Use:   "kits",
	Short: "List loaded contest kits, or show one in detail",
	RunE:  runKits,
}

func init() {
	f := kitsCmd.Flags()
	f.StringVar(&kitsFlags.catalogPath, "catalog", "", "Path to a kit catalog YAML (default: embedded catalog)")
	f.StringVar(&kitsFlags.code, "code", "", "Show a single kit by violation code")
}

func runKits(cmd *cobra.Command, _ []string) error {
	registry, err := catalog.Load(kitsFlags.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	out := cmd.OutOrStdout()

	if kitsFlags.code != "" {
		kit := registry.Get(kitsFlags.code)
		if kit == nil {
			return fmt.Errorf("no kit for violation code %q", kitsFlags.code)
		}
		fmt.Fprintf(out, "Kit:          %s\n", kit.ViolationID)
		fmt.Fprintf(out, "Name:         %s\n", kit.Name)
		fmt.Fprintf(out, "Category:     %s\n", kit.Category)
		fmt.Fprintf(out, "Base fine:    $%.2f\n", kit.BaseFine)
		fmt.Fprintf(out, "Base win rate: %.0f%%\n", kit.BaseWinRate*100)
		if kit.WeatherRelevance != "" {
			fmt.Fprintf(out, "Weather:      %s\n", kit.WeatherRelevance)
		}
		fmt.Fprintf(out, "Arguments:\n")
		for _, arg := range kit.Arguments {
			fmt.Fprintf(out, "  %-28s %-12s %-14s win %.0f%%\n", arg.ID, arg.Role, arg.Category, arg.WinRate*100)
		}
		return nil
	}

	for _, code := range registry.Codes() {
		kit := registry.Get(code)
		fmt.Fprintf(out, "%-22s %-36s $%-7.2f win %.0f%%\n", code, kit.Name, kit.BaseFine, kit.BaseWinRate*100)
	}
	return nil
}
