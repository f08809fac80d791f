package whisper

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"lukechampine.com/blake3"
)

//go:embed assets/faster_whisper.py
var helperScript []byte

// helperPath writes the embedded helper into the temp dir under a name
// derived from its content, so different builds never share a file.
func helperPath() (string, error) {
	sum := blake3.Sum256(helperScript)
	path := filepath.Join(os.TempDir(), "whisper2json-"+hex.EncodeToString(sum[:8])+".py")

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, helperScript) {
		return path, nil
	}
	if err := renameio.WriteFile(path, helperScript, 0o644); err != nil {
		return "", fmt.Errorf("write helper script: %w", err)
	}
	return path, nil
}
