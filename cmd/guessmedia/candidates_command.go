package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"guessmedia/internal/identification"
)

type candidateReport struct {
	ReleaseID string `json:"release_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Date      string `json:"date,omitempty"`
	Country   string `json:"country,omitempty"`
	Medium    string `json:"medium"`
	Discs     int    `json:"discs"`
}

func newCandidatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <audio file>...",
		Short: "List the releases named by ripper logs next to audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guesser, err := ctx.guesser(cmd.Context())
			if err != nil {
				return err
			}
			items, err := itemsFromPaths(args)
			if err != nil {
				return err
			}

			releases := guesser.Candidates(cmd.Context(), items)
			reports := make([]candidateReport, 0, len(releases))
			for _, release := range releases {
				candidate := identification.CandidateFromRelease(release)
				reports = append(reports, candidateReport{
					ReleaseID: release.ID,
					Title:     release.Title,
					Artist:    release.Artist,
					Date:      release.Date,
					Country:   release.Country,
					Medium:    candidate.Medium,
					Discs:     len(release.Media),
				})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, reports)
			}
			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintln(out, "No candidates: no ripper log with a known TOC was found")
				return nil
			}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				rows = append(rows, []string{
					r.ReleaseID, r.Artist, r.Title, r.Date, r.Country, r.Medium, strconv.Itoa(r.Discs),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Release", "Artist", "Title", "Date", "Country", "Medium", "Discs"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}
