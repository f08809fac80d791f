package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"whisper2json/internal/whisper"
)

const (
	timestampPlaces = 3
	durationPlaces  = 2

	progressInterval = 5 * time.Second
)

// Collect drains the segment stream exactly once and assembles the
// transcript. Timestamps are rounded to milliseconds, the duration to
// hundredths, and segment text is trimmed. Segment order is preserved.
func Collect(stream *whisper.Stream, info whisper.Info) (*TranscriptResult, error) {
	result := &TranscriptResult{
		Language: info.Language,
		Duration: roundTo(info.Duration, durationPlaces),
		Segments: []Segment{},
	}

	progress := rate.Sometimes{Interval: progressInterval}
	for seg := range stream.All() {
		result.Segments = append(result.Segments, Segment{
			Start: roundTo(seg.Start, timestampPlaces),
			End:   roundTo(seg.End, timestampPlaces),
			Text:  strings.TrimSpace(seg.Text),
		})

		progress.Do(func() {
			pct := 0.0
			if info.Duration > 0 {
				pct = math.Min(seg.End/info.Duration*100, 100)
			}
			slog.Info("transcribing",
				"segments", len(result.Segments),
				"position", formatClock(seg.End),
				"percent", fmt.Sprintf("%.1f%%", pct))
		})
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}

	slog.Debug("segments collected", "count", len(result.Segments))
	return result, nil
}

// roundTo rounds v to the given number of decimal places using the exact
// binary value of v and round-half-to-even, so 2.675 becomes 2.67.
func roundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloatWithExponent(v, -30).RoundBank(places).Float64()
	return f
}

// formatClock renders seconds as MM:SS for progress logs.
func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
