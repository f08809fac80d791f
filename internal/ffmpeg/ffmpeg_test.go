package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParseProbe(t *testing.T) {
	out := []byte(`{
  "streams": [{"codec_name": "pcm_s16le", "sample_rate": "16000", "channels": 1}],
  "format": {"duration": "93.412000"}
}`)

	info, err := parseProbe(out)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if info.Duration != 93.412 {
		t.Errorf("Duration = %v, want 93.412", info.Duration)
	}
	if info.Codec != "pcm_s16le" {
		t.Errorf("Codec = %q, want pcm_s16le", info.Codec)
	}
	if info.SampleRate != 16000 || info.Channels != 1 {
		t.Errorf("SampleRate/Channels = %d/%d, want 16000/1", info.SampleRate, info.Channels)
	}
}

func TestParseProbe_NoAudioStream(t *testing.T) {
	info, err := parseProbe([]byte(`{"streams": [], "format": {"duration": "1.5"}}`))
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if info.Codec != "N/A" {
		t.Errorf("Codec = %q, want N/A", info.Codec)
	}
}

func TestParseProbe_Invalid(t *testing.T) {
	if _, err := parseProbe([]byte("not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLogMediaInfo_MissingFile(t *testing.T) {
	if info := LogMediaInfo(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); info != nil {
		t.Errorf("expected nil info for missing file, got %+v", info)
	}
}

func TestLogMediaInfo_WithoutProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", "")

	if info := LogMediaInfo(context.Background(), path); info != nil {
		t.Errorf("expected nil info without ffprobe, got %+v", info)
	}
}
