package pipeline

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLineRunes is the subtitle line width used when none is given.
const DefaultMaxLineRunes = 42

// RenderSRT renders one subtitle cue per non-empty segment.
func RenderSRT(result *TranscriptResult, maxCPL int) string {
	if maxCPL <= 0 {
		maxCPL = DefaultMaxLineRunes
	}

	var sb strings.Builder
	n := 0
	for _, seg := range result.Segments {
		text := optimizeTextDisplay(seg.Text, maxCPL)
		if text == "" {
			continue
		}
		if n > 0 {
			sb.WriteByte('\n')
		}
		n++
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", n, formatSRTTime(seg.Start), formatSRTTime(seg.End), text)
	}
	return sb.String()
}

// WriteSRT writes the subtitle rendering of result to path.
func WriteSRT(path string, result *TranscriptResult, maxCPL int) error {
	return writeFile(path, []byte(RenderSRT(result, maxCPL)))
}

// formatSRTTime converts seconds to SRT time format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	ms := int64(math.Round(math.Abs(seconds) * 1000))
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// optimizeTextDisplay returns text on a single line if it fits within maxCPL,
// otherwise splits it into at most two lines.
func optimizeTextDisplay(text string, maxCPL int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxCPL {
		return text
	}

	runes := []rune(text)
	pos := findSplitPosition(runes, maxCPL)
	first := strings.TrimSpace(string(runes[:pos]))
	rest := strings.TrimSpace(string(runes[pos:]))
	if rest == "" {
		return first
	}
	return first + "\n" + rest
}
