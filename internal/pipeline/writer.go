package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrWrite is returned when an output file or its directory cannot be
// created or written.
var ErrWrite = errors.New("write output failed")

// WriteJSON writes the transcript as indented UTF-8 JSON, creating missing
// parent directories. The file is replaced atomically, so readers never see
// a partial document.
func WriteJSON(path string, result *TranscriptResult) error {
	data, err := marshalIndent(result)
	if err != nil {
		return fmt.Errorf("%w: encode transcript: %w", ErrWrite, err)
	}
	return writeFile(path, data)
}

// ReadJSON parses a transcript previously written by WriteJSON.
func ReadJSON(path string) (*TranscriptResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var result TranscriptResult
	if err := json.NewDecoder(f).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", filepath.Base(path), err)
	}
	if result.Segments == nil {
		result.Segments = []Segment{}
	}
	return &result, nil
}

// EncodeJSON writes v to w in the same format as WriteJSON.
func EncodeJSON(w io.Writer, v any) error {
	data, err := marshalIndent(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// marshalIndent uses two-space indentation and leaves non-ASCII and HTML
// characters unescaped.
func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create output directory: %w", ErrWrite, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
