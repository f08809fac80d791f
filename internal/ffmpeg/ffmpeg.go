package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// MediaInfo holds duration and stream information from ffprobe.
type MediaInfo struct {
	Duration   float64
	Codec      string
	SampleRate int
	Channels   int
}

// Available returns true if ffprobe is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// ProbeMedia uses ffprobe to get the duration and first audio stream.
func ProbeMedia(ctx context.Context, path string) (*MediaInfo, error) {
	if !Available() {
		return nil, fmt.Errorf("ffprobe not found")
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name,sample_rate,channels:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (*MediaInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	dur, _ := strconv.ParseFloat(probe.Format.Duration, 64)
	info := &MediaInfo{Duration: dur, Codec: "N/A"}
	if len(probe.Streams) > 0 {
		s := probe.Streams[0]
		if s.CodecName != "" {
			info.Codec = s.CodecName
		}
		info.SampleRate, _ = strconv.Atoi(s.SampleRate)
		info.Channels = s.Channels
	}
	return info, nil
}

// LogMediaInfo logs file size and, when ffprobe is installed, the audio
// stream details. It never fails; a missing file is left for the model to
// report.
func LogMediaInfo(ctx context.Context, path string) *MediaInfo {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return nil
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	msg := fmt.Sprintf("file size: %.2f MB", sizeMB)

	var info *MediaInfo
	if Available() {
		info, err = ProbeMedia(ctx, path)
		if err != nil {
			slog.Debug("probe failed", "path", path, "err", err)
		}
	}
	if info != nil {
		minutes := int(info.Duration) / 60
		seconds := int(info.Duration) % 60
		msg += fmt.Sprintf(" | duration: %02d:%02d | codec: %s | %d Hz x%d",
			minutes, seconds, info.Codec, info.SampleRate, info.Channels)
	}

	slog.Info(msg)
	return info
}
