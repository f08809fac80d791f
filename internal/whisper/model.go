package whisper

import (
	"context"
	"errors"
)

var (
	// ErrModelLoad is returned when the model weights are missing or cannot
	// be used with the requested compute type.
	ErrModelLoad = errors.New("model load failed")

	// ErrTranscription is returned when the audio cannot be decoded or the
	// model fails while producing segments.
	ErrTranscription = errors.New("transcription failed")

	// ErrStreamConsumed is returned when a segment stream is iterated twice.
	ErrStreamConsumed = errors.New("segment stream already consumed")
)

// Segment is one span of recognized speech as reported by the model.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Info is the summary the model reports before the first segment.
type Info struct {
	Language            string
	LanguageProbability float64
	Duration            float64
}

// LoadOptions selects the model weights and how they are run.
type LoadOptions struct {
	Size        string // tiny, base, small, medium, large-v3 or a local path
	ComputeType string // int8, float16, ...
	Device      string // auto|cpu|cuda
	Python      string // interpreter used to run the helper
}

// Options are the decoding options for a single transcription.
type Options struct {
	BeamSize  int
	VADFilter bool
	Language  string // empty means detect
}

// Model is a loaded transcription capability.
type Model interface {
	// Transcribe starts decoding audioPath. The returned stream must be
	// drained before Transcribe is called again.
	Transcribe(ctx context.Context, audioPath string, opts Options) (*Stream, Info, error)
	Close() error
}

// LoaderFunc acquires a Model.
type LoaderFunc func(ctx context.Context, opts LoadOptions) (Model, error)
