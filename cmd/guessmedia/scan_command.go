package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

type scanReport struct {
	Directory   string   `json:"directory"`
	HasValidLog bool     `json:"has_valid_log"`
	ReleaseIDs  []string `json:"release_ids"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <directory>...",
		Short: "Report the ripper log evidence found below directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.evidenceCache(cmd.Context())
			if err != nil {
				return err
			}

			reports := make([]scanReport, 0, len(args))
			for _, dir := range args {
				ev, err := cache.ForDirectory(cmd.Context(), dir)
				if err != nil {
					return fmt.Errorf("scan %s: %w", dir, err)
				}
				abs, _ := filepath.Abs(dir)
				reports = append(reports, scanReport{
					Directory:   abs,
					HasValidLog: ev.HasValidLog,
					ReleaseIDs:  ev.ReleaseIDs,
				})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, reports)
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				rows = append(rows, []string{
					r.Directory,
					renderVerdict(yesNo(r.HasValidLog), r.HasValidLog, colorize),
					listOrDash(r.ReleaseIDs, "\n"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Directory", "Log", "Releases"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
