package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "whisper2json",
	Short: "Transcribe an audio file into timestamped JSON with faster-whisper",
	Long: `whisper2json runs a local faster-whisper model over an audio file and
writes the detected language, the audio duration and the timestamped
segments as a UTF-8 JSON document.

Run without a subcommand it transcribes audio/git_commands_narration.wav
into data/transcript.json using the defaults of "transcribe".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	RunE:          runTranscribe,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
