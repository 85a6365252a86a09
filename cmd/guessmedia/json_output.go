package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// listOrDash joins values for a table cell.
func listOrDash(values []string, sep string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, sep)
}
