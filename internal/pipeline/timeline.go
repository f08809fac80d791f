package pipeline

import (
	"fmt"
	"math"
)

// DefaultFPS is the frame rate used by the video renderer.
const DefaultFPS = 30

// BuildTimeline converts each segment into a frame count at fps. Every entry
// lasts at least one frame.
func BuildTimeline(result *TranscriptResult, fps int) ([]TimelineEntry, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}

	entries := make([]TimelineEntry, 0, len(result.Segments))
	for _, seg := range result.Segments {
		entries = append(entries, TimelineEntry{
			Text:   seg.Text,
			Frames: secondsToFrames(seg.End-seg.Start, fps),
		})
	}
	return entries, nil
}

func secondsToFrames(seconds float64, fps int) int {
	return max(1, int(math.Round(seconds*float64(fps))))
}

// WriteTimeline writes entries as indented JSON, creating missing parent
// directories.
func WriteTimeline(path string, entries []TimelineEntry) error {
	data, err := marshalIndent(entries)
	if err != nil {
		return fmt.Errorf("%w: encode timeline: %w", ErrWrite, err)
	}
	return writeFile(path, data)
}
