package cmd

import (
	"log/slog"

	"whisper2json/internal/config"
	"whisper2json/internal/pipeline"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [transcript.json]",
	Short: "Convert a transcript into per-segment frame counts",
	Long: `Read a transcript written by "transcribe" and print one entry per
segment with its text and its length in video frames. Every entry lasts
at least one frame.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTimeline,
}

var (
	fps            int
	timelineOutput string
)

func init() {
	defaults := config.Default()

	timelineCmd.Flags().IntVar(&fps, "fps", defaults.TimelineFPS, "frames per second")
	timelineCmd.Flags().StringVarP(&timelineOutput, "output", "o", "", "write the timeline to a file instead of stdout")

	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	path := config.Default().OutputPath
	if len(args) > 0 {
		path = args[0]
	}

	transcript, err := pipeline.ReadJSON(path)
	if err != nil {
		return err
	}
	entries, err := pipeline.BuildTimeline(transcript, fps)
	if err != nil {
		return err
	}

	if timelineOutput == "" {
		return pipeline.EncodeJSON(cmd.OutOrStdout(), entries)
	}

	if err := pipeline.WriteTimeline(timelineOutput, entries); err != nil {
		return err
	}
	slog.Info("timeline saved", "path", timelineOutput, "entries", len(entries))
	return nil
}
