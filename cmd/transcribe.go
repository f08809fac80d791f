package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"whisper2json/internal/config"
	"whisper2json/internal/whisper"
	"whisper2json/internal/worker"

	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Transcribe an audio file to JSON",
	Long: `Transcribe an audio file into a JSON transcript using a local
faster-whisper model. The audio path defaults to
audio/git_commands_narration.wav.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranscribe,
}

var (
	output       string
	modelSize    string
	computeType  string
	device       string
	beamSize     int
	vadFilter    bool
	language     string
	python       string
	writeSRT     bool
	maxLineRunes int
)

func init() {
	defaults := config.Default()

	transcribeCmd.Flags().StringVarP(&output, "output", "o", defaults.OutputPath, "output JSON path")
	transcribeCmd.Flags().StringVarP(&modelSize, "model", "m", defaults.ModelSize, "model size or local model path")
	transcribeCmd.Flags().StringVar(&computeType, "compute-type", defaults.ComputeType, "compute precision: int8, float16, float32, ...")
	transcribeCmd.Flags().StringVar(&device, "device", defaults.Device, "device: auto, cpu, cuda")
	transcribeCmd.Flags().IntVar(&beamSize, "beam-size", defaults.BeamSize, "beam search width")
	transcribeCmd.Flags().BoolVar(&vadFilter, "vad", defaults.VADFilter, "filter out non-speech with voice activity detection")
	transcribeCmd.Flags().StringVarP(&language, "language", "l", defaults.Language, "spoken language code, or auto to detect")
	transcribeCmd.Flags().StringVar(&python, "python", "", "python interpreter with faster-whisper installed (default $"+config.PythonEnv+" or "+defaults.Python+")")
	transcribeCmd.Flags().BoolVar(&writeSRT, "srt", false, "also write an SRT subtitle file next to the JSON")
	transcribeCmd.Flags().IntVar(&maxLineRunes, "max-line", defaults.MaxLineRunes, "SRT characters per line limit")

	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	defaults := config.Default()

	inputPath := defaults.AudioPath
	if len(args) > 0 {
		inputPath = args[0]
	}

	if beamSize < 1 {
		return fmt.Errorf("beam size must be at least 1, got %d", beamSize)
	}

	if err := config.LoadEnv(); err != nil {
		return err
	}
	interpreter := python
	if interpreter == "" {
		interpreter = config.PythonFromEnv(defaults.Python)
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		InputPath:  inputPath,
		OutputPath: output,
		Model: whisper.LoadOptions{
			Size:        modelSize,
			ComputeType: computeType,
			Device:      device,
			Python:      interpreter,
		},
		Decode: whisper.Options{
			BeamSize:  beamSize,
			VADFilter: vadFilter,
			Language:  config.NormalizeLanguage(language),
		},
		SRT:          writeSRT,
		MaxLineRunes: maxLineRunes,
		Stdout:       cmd.OutOrStdout(),
	}

	_, err := worker.Run(ctx, opts)
	return err
}
