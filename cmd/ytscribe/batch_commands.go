package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytscribe/internal/batch"
	"ytscribe/internal/catalog"
	"ytscribe/internal/metadata"
	"ytscribe/internal/services/ytdlp"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Queue videos and process them in bulk",
	}

	batchCmd.AddCommand(newBatchAddCommand(ctx))
	batchCmd.AddCommand(newBatchRunCommand(ctx))
	return batchCmd
}

func newBatchAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url-or-csv> [url-or-csv...]",
		Short: "Add videos to the catalog from URLs or channel CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sigCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			added := 0
			skipped := 0
			enqueue := func(req catalog.AddRequest) error {
				inserted, err := store.Add(sigCtx, req)
				if err != nil {
					return fmt.Errorf("enqueue %s: %w", req.VideoID, err)
				}
				if inserted {
					added++
				} else {
					skipped++
				}
				return nil
			}

			var extractor *ytdlp.Client
			for _, arg := range args {
				// A path to an existing file is a channel CSV; anything
				// else is resolved through yt-dlp.
				if info, statErr := os.Stat(arg); statErr == nil && info.Mode().IsRegular() {
					rows, err := readChannelCSV(arg)
					if err != nil {
						return err
					}
					for _, row := range rows {
						if err := enqueue(addRequestFromRow(row)); err != nil {
							return err
						}
					}
					continue
				}

				if extractor == nil {
					extractor, err = ctx.newExtractor(logger)
					if err != nil {
						return err
					}
				}
				info, err := extractor.FetchVideoInfo(sigCtx, arg)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", arg, err)
				}
				// Channel and playlist URLs expand into their entries.
				entries := info.Entries
				if len(entries) == 0 {
					entries = []*ytdlp.VideoInfo{info}
				}
				for _, entry := range entries {
					row := entry.MetadataRow()
					if err := enqueue(catalog.AddRequest{
						VideoID:         entry.ID,
						URL:             entry.CanonicalURL(),
						Title:           entry.Title,
						Channel:         entry.ChannelName(),
						UploadDate:      row.UploadDate,
						DurationSeconds: row.DurationSeconds,
					}); err != nil {
						return err
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d videos (%d already cataloged)\n", added, skipped)
			return nil
		},
	}
}

func readChannelCSV(path string) ([]metadata.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata file %s: %w", path, err)
	}
	defer file.Close()

	rows, err := metadata.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read metadata file %s: %w", path, err)
	}
	return rows, nil
}

func addRequestFromRow(row metadata.Row) catalog.AddRequest {
	url := row.VideoURL
	if url == "" {
		url = "https://www.youtube.com/watch?v=" + row.VideoID
	}
	return catalog.AddRequest{
		VideoID:         row.VideoID,
		URL:             url,
		Title:           row.Title,
		Channel:         row.ChannelName,
		UploadDate:      row.UploadDate,
		DurationSeconds: row.DurationSeconds,
	}
}

func newBatchRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process all pending catalog videos",
		Args:  cobra.NoArgs,
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
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sigCtx, cancel := signalContext(cmd.Context())
			defer cancel()

			runner := batch.NewRunner(cfg, store, extractor, logger)
			summary, err := runner.Run(sigCtx)
			if err != nil {
				if errors.Is(err, batch.ErrRunnerActive) {
					return fmt.Errorf("another batch run is already active for %s", cfg.Paths.LogDir)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Processed == 0 {
				fmt.Fprintln(out, "No pending videos in the catalog")
				return nil
			}
			fmt.Fprintf(out, "Processed %d videos: %d completed, %d without captions, %d failed, %d skipped\n",
				summary.Processed, summary.Completed, summary.NoCaptions, summary.Failed, summary.Skipped)
			return nil
		},
	}
}
