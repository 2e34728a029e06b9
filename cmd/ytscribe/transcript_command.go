package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytscribe/internal/batch"
	"ytscribe/internal/transcript"
)

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string
	var noTimestamps bool
	var keepDuplicates bool
	var threshold int

	cmd := &cobra.Command{
		Use:   "transcript <url>",
		Short: "Fetch one video's auto-captions and print the cleaned transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			run := *cfg
			if cmd.Flags().Changed("format") {
				run.Transcript.Format = format
			}
			if noTimestamps {
				run.Transcript.Timestamps = false
			}
			if keepDuplicates {
				run.Transcript.Deduplicate = false
			}
			if cmd.Flags().Changed("threshold") {
				run.Transcript.OverlapThreshold = threshold
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

			result, err := batch.Extract(sigCtx, &run, extractor, logger, args[0])
			if err != nil {
				return err
			}

			content := transcript.Format(result.Segments, transcript.FormatOptions{
				Style:      transcript.StyleFromString(run.Transcript.Format),
				Timestamps: run.Transcript.Timestamps,
			})
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			if err := os.WriteFile(output, []byte(content+"\n"), 0o644); err != nil {
				return fmt.Errorf("write transcript %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote transcript for %s (%d cues, %d segments) to %s\n",
				result.Info.ID, result.CueCount, len(result.Segments), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text or markdown)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the transcript to a file instead of stdout")
	cmd.Flags().BoolVar(&noTimestamps, "no-timestamps", false, "Omit segment timestamps")
	cmd.Flags().BoolVar(&keepDuplicates, "keep-duplicates", false, "Skip rolling-caption deduplication")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Minimum overlap length for merging consecutive captions")
	return cmd
}
