package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sampleFlags struct {
	out string
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample evaluation request file",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleFlags.out, "out", "request.json", "Output path for the sample request")
}

const sampleRequest = `{
  "ticket": {
    "ticketNumber": "0012345678",
    "date": "2026-01-12",
    "time": "09:42",
    "location": "4700 N Damen Ave",
    "violationCode": "street_cleaning",
    "amount": 60,
    "hadSignageIssue": true,
    "signageDetail": "sign at mid-block pole missing"
  },
  "evidence": {
    "hasPhotos": true,
    "photoTypes": ["signage", "street"],
    "hasWitnesses": false,
    "hasDocuments": false
  },
  "grounds": ["the signs were missing"]
}
`

func runSample(cmd *cobra.Command, _ []string) error {
	if err := os.WriteFile(sampleFlags.out, []byte(sampleRequest), 0o644); err != nil {
		return fmt.Errorf("write sample request: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", sampleFlags.out)
	return nil
}
