package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"./", "outfile"},
		{".", "outfile"},
		{"", "outfile"},
		{"/", "outfile"},
		{"..", "outfile"},
		{"sprites", "sprites"},
		{"sprites/", "sprites"},
		{"sprites//", "sprites"},
		{"assets/ui/buttons", "buttons"},
		{"assets/ui/buttons/", "buttons"},
		{"/abs/path/enemies", "enemies"},
		{"./heroes", "heroes"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := outputPrefix(tt.input); got != tt.want {
				t.Errorf("outputPrefix(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig without a file failed: %v", err)
	}
	if c.Pack.MaxSize != 1024 {
		t.Errorf("expected defaults, got %+v", c)
	}

	path := filepath.Join(t.TempDir(), "c.json")
	if err := os.WriteFile(path, []byte(`{"pack": {"border": 9}}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	c, err = loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if c.Pack.Border != 9 {
		t.Errorf("border: got %d, want 9", c.Pack.Border)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("an explicit config path that does not exist should fail")
	}
}
