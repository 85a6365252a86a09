package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"guessmedia/internal/identification"
)

type scoreReport struct {
	Items     []identification.Item    `json:"items"`
	Candidate identification.Candidate `json:"candidate"`
	Penalties map[string]float64       `json:"penalties"`
	Total     float64                  `json:"total"`
	Tags      []string                 `json:"tags"`
	Weights   identification.Weights   `json:"weights"`
}

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var medium string
	var releaseID string
	var dataSource string

	cmd := &cobra.Command{
		Use:   "score --release-id ID [--medium CD] <audio file>...",
		Short: "Compute medium and album id penalties for one candidate release",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			guesser, err := ctx.guesser(cmd.Context())
			if err != nil {
				return err
			}
			items, err := probeItems(cmd.Context(), cfg.Probe.FFprobeBinary, args, logger)
			if err != nil {
				return err
			}

			candidate := identification.Candidate{
				ReleaseID:  strings.TrimSpace(releaseID),
				Medium:     strings.TrimSpace(medium),
				DataSource: dataSource,
			}
			dist := guesser.AlbumDistance(cmd.Context(), items, candidate)
			report := scoreReport{
				Items:     items,
				Candidate: identification.Annotate(candidate, dist),
				Penalties: dist.Buckets(),
				Total:     dist.Total(),
				Tags:      dist.Tags,
				Weights: identification.Weights{
					Media:   cfg.Weights.MediaWeight,
					AlbumID: cfg.Weights.AlbumIDWeight,
				},
			}
			if report.Tags == nil {
				report.Tags = []string{}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := [][]string{
				{identification.BucketMedia, formatPenalty(dist.Penalty(identification.BucketMedia))},
				{identification.BucketAlbumID, formatPenalty(dist.Penalty(identification.BucketAlbumID))},
				{"total", formatPenalty(report.Total)},
			}
			fmt.Fprintln(out, renderTable([]string{"Bucket", "Penalty"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "Source: %s\n", renderDataSource(candidate.DataSource, dist.Tags, colorize))
			return nil
		},
	}

	cmd.Flags().StringVar(&medium, "medium", "", "Declared medium of the candidate, e.g. CD or \"Digital Media\"")
	cmd.Flags().StringVar(&releaseID, "release-id", "", "MusicBrainz release id of the candidate")
	cmd.Flags().StringVar(&dataSource, "data-source", "MusicBrainz", "Data source label annotated with diagnostic tags")
	_ = cmd.MarkFlagRequired("release-id")
	return cmd
}

func formatPenalty(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
