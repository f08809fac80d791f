package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.ModelSize != "small" {
		t.Errorf("ModelSize = %q, want small", cfg.ModelSize)
	}
	if cfg.ComputeType != "int8" {
		t.Errorf("ComputeType = %q, want int8", cfg.ComputeType)
	}
	if cfg.BeamSize != 5 {
		t.Errorf("BeamSize = %d, want 5", cfg.BeamSize)
	}
	if !cfg.VADFilter {
		t.Error("VADFilter should default to true")
	}
	if cfg.OutputPath != "data/transcript.json" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"auto", ""},
		{" AUTO ", ""},
		{"en", "en"},
		{"EN", "en"},
		{"en-US", "en"},
		{"pt_BR", "pt"},
		{"jpn", "ja"},
		{"zho", "zh"},
		{"yue", "yue"},
	}
	for _, tt := range tests {
		if got := NormalizeLanguage(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	// A missing .env is not an error.
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv without .env: %v", err)
	}

	t.Setenv(PythonEnv, "")
	os.Unsetenv(PythonEnv)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(PythonEnv+"=/opt/venv/bin/python\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := PythonFromEnv("python3"); got != "/opt/venv/bin/python" {
		t.Errorf("PythonFromEnv = %q, want /opt/venv/bin/python", got)
	}
}

func TestPythonFromEnv_Fallback(t *testing.T) {
	t.Setenv(PythonEnv, "")
	if got := PythonFromEnv("python3"); got != "python3" {
		t.Errorf("PythonFromEnv = %q, want python3", got)
	}
}
