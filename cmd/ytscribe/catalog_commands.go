package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytscribe/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and maintain the transcript catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogRetryCommand(ctx))
	catalogCmd.AddCommand(newCatalogClearCommand(ctx))
	return catalogCmd
}

// truncateTitle shortens a title to max display characters, cutting on rune
// boundaries so multibyte titles stay intact.
func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max-3]) + "..."
}

func parseStatuses(values []string) ([]catalog.Status, error) {
	statuses := make([]catalog.Status, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if !catalog.ValidStatus(value) {
			return nil, fmt.Errorf("unknown status %q", value)
		}
		statuses = append(statuses, catalog.Status(value))
	}
	return statuses, nil
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusFlags)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			videos, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(videos) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}

			rows := make([][]string, 0, len(videos))
			for _, video := range videos {
				title := truncateTitle(video.Title, 60)
				rows = append(rows, []string{
					strconv.FormatInt(video.ID, 10),
					video.VideoID,
					colorizeStatus(string(video.Status)),
					title,
					strconv.FormatInt(video.SegmentCount, 10),
					video.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "VIDEO", "STATUS", "TITLE", "SEGMENTS", "UPDATED"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d total: %d pending, %d fetching, %d completed, %d without captions, %d failed, %d skipped\n",
				stats.Total, stats.Pending, stats.Fetching, stats.Completed, stats.NoCaptions, stats.Failed, stats.Skipped)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFlags, "status", nil, "Filter by lifecycle status (repeatable)")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <video-id>",
		Short: "Show one cataloged video in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			video, err := store.GetByVideoID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if video == nil {
				return fmt.Errorf("video %s is not in the catalog", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video:      %s\n", video.VideoID)
			fmt.Fprintf(out, "Title:      %s\n", video.Title)
			fmt.Fprintf(out, "Channel:    %s\n", video.Channel)
			fmt.Fprintf(out, "URL:        %s\n", video.URL)
			fmt.Fprintf(out, "Uploaded:   %s\n", video.UploadDate)
			fmt.Fprintf(out, "Status:     %s\n", colorizeStatus(string(video.Status)))
			if video.TranscriptPath != "" {
				fmt.Fprintf(out, "Transcript: %s (%d cues, %d segments)\n",
					video.TranscriptPath, video.CueCount, video.SegmentCount)
			}
			if video.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:      %s\n", video.ErrorMessage)
			}
			fmt.Fprintf(out, "Updated:    %s\n", video.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newCatalogRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [id...]",
		Short: "Requeue failed and skipped videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid catalog id %q", arg)
				}
				ids = append(ids, id)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			requeued, err := store.RetryFailed(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Requeued %d videos\n", requeued)
			return nil
		},
	}
}

func newCatalogClearCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove videos from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusFlags)
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				statuses = []catalog.Status{catalog.StatusCompleted}
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d videos\n", removed)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFlags, "status", nil, "Statuses to remove (defaults to completed)")
	return cmd
}
