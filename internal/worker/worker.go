package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"whisper2json/internal/ffmpeg"
	"whisper2json/internal/pipeline"
	"whisper2json/internal/whisper"
)

// Options configures the worker.
type Options struct {
	InputPath  string
	OutputPath string
	Model      whisper.LoadOptions
	Decode     whisper.Options

	// SRT also writes a subtitle file next to the JSON output.
	SRT          bool
	MaxLineRunes int

	// Loader acquires the model; nil means the faster-whisper helper.
	Loader whisper.LoaderFunc
	// Stdout receives the completion lines; nil means os.Stdout.
	Stdout io.Writer
}

type stage int

const (
	stageIdle stage = iota
	stageModelLoading
	stageTranscribing
	stageAggregating
	stageWriting
	stageDone
	stageFailed
)

func (s stage) String() string {
	switch s {
	case stageIdle:
		return "idle"
	case stageModelLoading:
		return "model_loading"
	case stageTranscribing:
		return "transcribing"
	case stageAggregating:
		return "aggregating"
	case stageWriting:
		return "writing"
	case stageDone:
		return "done"
	case stageFailed:
		return "failed"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// run tracks the linear state machine of one transcription.
type run struct {
	stage stage
}

func (r *run) advance(next stage) {
	slog.Debug("stage", "from", r.stage, "to", next)
	r.stage = next
}

func (r *run) fail(err error) error {
	slog.Debug("stage", "from", r.stage, "to", stageFailed, "err", err)
	r.stage = stageFailed
	return err
}

// Run is the top-level orchestrator for the transcription pipeline: load the
// model, transcribe the input, collect the segments and write the transcript.
// Nothing is written unless transcription succeeds.
func Run(ctx context.Context, opts Options) (*pipeline.TranscriptResult, error) {
	loader := opts.Loader
	if loader == nil {
		loader = loadFasterWhisper
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	r := &run{stage: stageIdle}

	slog.Info("processing file", "input", filepath.Base(opts.InputPath))
	ffmpeg.LogMediaInfo(ctx, opts.InputPath)

	r.advance(stageModelLoading)
	model, err := loader(ctx, opts.Model)
	if err != nil {
		return nil, r.fail(fmt.Errorf("load model: %w", err))
	}
	defer func() {
		if err := model.Close(); err != nil {
			slog.Debug("close model", "err", err)
		}
	}()

	r.advance(stageTranscribing)
	stream, info, err := model.Transcribe(ctx, opts.InputPath, opts.Decode)
	if err != nil {
		return nil, r.fail(fmt.Errorf("transcribe: %w", err))
	}
	slog.Info("detected language",
		"language", info.Language,
		"probability", fmt.Sprintf("%.2f", info.LanguageProbability),
		"duration_sec", fmt.Sprintf("%.2f", info.Duration))

	r.advance(stageAggregating)
	result, err := pipeline.Collect(stream, info)
	if err != nil {
		return nil, r.fail(fmt.Errorf("transcribe: %w", err))
	}

	r.advance(stageWriting)
	if err := pipeline.WriteJSON(opts.OutputPath, result); err != nil {
		return nil, r.fail(err)
	}
	slog.Info("transcript saved", "path", opts.OutputPath, "segments", len(result.Segments))

	if opts.SRT {
		srtPath := SRTPath(opts.OutputPath)
		if err := pipeline.WriteSRT(srtPath, result, opts.MaxLineRunes); err != nil {
			return nil, r.fail(err)
		}
		slog.Info("SRT file saved", "path", srtPath)
	}

	r.advance(stageDone)
	fmt.Fprintln(stdout, "Transcription complete")
	fmt.Fprintf(stdout, "Saved to %s\n", opts.OutputPath)
	return result, nil
}

// SRTPath returns the subtitle path that sits next to a JSON output path.
func SRTPath(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".srt"
}

func loadFasterWhisper(ctx context.Context, opts whisper.LoadOptions) (whisper.Model, error) {
	m, err := whisper.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}
