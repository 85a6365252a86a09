package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"guessmedia/internal/ripperlog"
)

type tocReport struct {
	Path       string   `json:"path"`
	Tool       string   `json:"tool"`
	TrackCount int      `json:"track_count"`
	TOC        string   `json:"toc,omitempty"`
	ReleaseIDs []string `json:"release_ids,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func newTOCCommand(ctx *commandContext) *cobra.Command {
	var lookup bool

	cmd := &cobra.Command{
		Use:   "toc <logfile>...",
		Short: "Print the MusicBrainz TOC recovered from EAC/XLD log files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]tocReport, 0, len(args))
			for _, path := range args {
				report := tocReport{Path: path}
				log, err := ripperlog.ReadFile(path)
				report.Tool = log.Tool.String()
				if err != nil {
					report.Error = describeLogError(err)
					reports = append(reports, report)
					continue
				}
				report.TrackCount = log.TOC.TrackCount()
				report.TOC = log.TOC.String()

				if lookup {
					if err := ctx.ensureServices(cmd.Context()); err != nil {
						return err
					}
					ids, err := ctx.musicbrainz.ReleasesByTOC(cmd.Context(), report.TOC)
					if err != nil {
						report.Error = fmt.Sprintf("lookup failed: %v", err)
					} else {
						report.ReleaseIDs = ids
					}
				}
				reports = append(reports, report)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, reports)
			}
			headers := []string{"File", "Tool", "Tracks", "TOC"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}
			if lookup {
				headers = append(headers, "Releases")
				aligns = append(aligns, alignLeft)
			}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				tracks, toc := "-", r.TOC
				if r.Error != "" && r.TOC == "" {
					toc = r.Error
				} else {
					tracks = strconv.Itoa(r.TrackCount)
				}
				row := []string{r.Path, r.Tool, tracks, toc}
				if lookup {
					releases := listOrDash(r.ReleaseIDs, ", ")
					if r.Error != "" && r.TOC != "" {
						releases = r.Error
					}
					row = append(row, releases)
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&lookup, "lookup", false, "Also resolve each TOC to MusicBrainz release ids")
	return cmd
}

func describeLogError(err error) string {
	switch {
	case errors.Is(err, ripperlog.ErrNotRipperLog):
		return "not an EAC or XLD log"
	case errors.Is(err, ripperlog.ErrNoTOC):
		return "no usable TOC"
	case errors.Is(err, ripperlog.ErrUnreadable):
		return "unreadable"
	default:
		return err.Error()
	}
}
