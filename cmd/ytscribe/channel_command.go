package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ytscribe/internal/catalog"
	"ytscribe/internal/fileutil"
	"ytscribe/internal/metadata"
	"ytscribe/internal/services/ytdlp"
)

func newChannelCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var after string
	var before string
	var output string
	var enqueue bool

	cmd := &cobra.Command{
		Use:   "channel <url>",
		Short: "Export a channel's video metadata to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			extractor, err := ctx.newExtractor(logger)
			if err != nil {
				return err
			}

			sigCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			videos, err := extractor.FetchChannelVideos(sigCtx, args[0], ytdlp.ChannelOptions{
				PlaylistLimit: limit,
				StartDate:     after,
				EndDate:       before,
			})
			if err != nil {
				return err
			}
			if len(videos) == 0 {
				return fmt.Errorf("no videos found for %s", args[0])
			}

			rows := make([]metadata.Row, 0, len(videos))
			for _, video := range videos {
				rows = append(rows, video.MetadataRow())
			}

			path := strings.TrimSpace(output)
			if path == "" {
				base := fileutil.SanitizeFileName(videos[0].ChannelName())
				if base == "" {
					base = "channel"
				}
				path = fileutil.UniquePath(cfg.Paths.OutputDir, base+"_videos", ".csv")
			}
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create metadata file %s: %w", path, err)
			}
			if err := metadata.WriteCSV(file, rows); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close metadata file %s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote metadata for %d videos to %s\n", len(rows), path)

			if !enqueue {
				return nil
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			added := 0
			for _, video := range videos {
				row := video.MetadataRow()
				inserted, err := store.Add(sigCtx, catalog.AddRequest{
					VideoID:         video.ID,
					URL:             video.CanonicalURL(),
					Title:           video.Title,
					Channel:         video.ChannelName(),
					UploadDate:      row.UploadDate,
					DurationSeconds: row.DurationSeconds,
				})
				if err != nil {
					return fmt.Errorf("enqueue %s: %w", video.ID, err)
				}
				if inserted {
					added++
				}
			}
			fmt.Fprintf(out, "Enqueued %d new videos (%d already cataloged)\n", added, len(videos)-added)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop after this many videos (0 for all)")
	cmd.Flags().StringVar(&after, "after", "", "Only include videos uploaded on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&before, "before", "", "Only include videos uploaded on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination CSV path")
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "Also add the videos to the transcript catalog")
	return cmd
}
