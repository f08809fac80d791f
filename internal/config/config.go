package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// PythonEnv names the interpreter used to run the model helper.
const PythonEnv = "WHISPER2JSON_PYTHON"

// ModelSettings selects the model and how audio is decoded.
type ModelSettings struct {
	ModelSize   string
	ComputeType string
	Device      string
	BeamSize    int
	VADFilter   bool
	Language    string
	Python      string
}

// Config holds the full application configuration.
type Config struct {
	ModelSettings

	AudioPath    string
	OutputPath   string
	MaxLineRunes int
	TimelineFPS  int
}

// Default returns a Config holding the tool's fixed defaults: the small model
// at int8 precision, beam width 5 and voice-activity filtering on.
func Default() *Config {
	return &Config{
		ModelSettings: ModelSettings{
			ModelSize:   "small",
			ComputeType: "int8",
			Device:      "auto",
			BeamSize:    5,
			VADFilter:   true,
			Language:    "auto",
			Python:      "python3",
		},
		AudioPath:    "audio/git_commands_narration.wav",
		OutputPath:   "data/transcript.json",
		MaxLineRunes: 42,
		TimelineFPS:  30,
	}
}

// LoadEnv reads an optional .env file from the working directory. Variables
// already present in the environment win.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// PythonFromEnv returns the interpreter override from the environment, or
// fallback when unset.
func PythonFromEnv(fallback string) string {
	if v := os.Getenv(PythonEnv); v != "" {
		return v
	}
	return fallback
}
