package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleResult() *TranscriptResult {
	return &TranscriptResult{
		Language: "en",
		Duration: 12.35,
		Segments: []Segment{
			{Start: 0, End: 2.346, Text: "Use git add <file> & commit."},
			{Start: 2.5, End: 5.125, Text: "Café résumé — 日本語"},
		},
	}
}

func TestWriteJSON_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "transcript.json")

	if err := WriteJSON(path, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output not created: %v", err)
	}
}

func TestWriteJSON_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := WriteJSON(path, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "{\n  \"language\": \"en\",\n  \"duration\": 12.35,\n  \"segments\": [\n    {\n") {
		t.Errorf("unexpected layout:\n%s", out)
	}
	if !strings.Contains(out, "Café résumé — 日本語") {
		t.Errorf("non-ASCII text should be written literally:\n%s", out)
	}
	if !strings.Contains(out, "<file> & commit") {
		t.Errorf("HTML characters should not be escaped:\n%s", out)
	}
	if strings.Contains(out, `\u`) {
		t.Errorf("output contains unicode escapes:\n%s", out)
	}
}

func TestWriteJSON_EmptySegments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	result := &TranscriptResult{Language: "en", Duration: 3.5, Segments: []Segment{}}
	if err := WriteJSON(path, result); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"segments": []`) {
		t.Errorf("empty segments should serialize as [], got:\n%s", data)
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	want := sampleResult()
	if err := WriteJSON(path, want); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestWriteJSON_Idempotent(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.json")
	p2 := filepath.Join(dir, "two.json")

	if err := WriteJSON(p1, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := WriteJSON(p2, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	b1, _ := os.ReadFile(p1)
	b2, _ := os.ReadFile(p2)
	if !bytes.Equal(b1, b2) {
		t.Error("same transcript produced different bytes")
	}
}

func TestWriteJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := os.WriteFile(path, []byte("stale content that is longer than the new file"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := &TranscriptResult{Language: "fr", Segments: []Segment{}}
	if err := WriteJSON(path, result); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.Language != "fr" {
		t.Errorf("Language = %q, want fr", got.Language)
	}
}

func TestWriteJSON_DirectoryIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "data")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteJSON(filepath.Join(blocker, "transcript.json"), sampleResult())
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestReadJSON_Missing(t *testing.T) {
	if _, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing transcript")
	}
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	entries := []TimelineEntry{{Text: "ß", Frames: 3}}
	if err := EncodeJSON(&buf, entries); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	want := "[\n  {\n    \"text\": \"ß\",\n    \"frames\": 3\n  }\n]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
