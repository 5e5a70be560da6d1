package shared

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a == b {
		t.Errorf("expected unique IDs, got %s twice", a)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("with writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Info("hello")
		if buf.Len() == 0 {
			t.Error("expected log output to be written to buffer")
		}
	})

	t.Run("with nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "jukebox.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("hello")

	if _, err := filepath.Glob(path); err != nil {
		t.Fatalf("glob failed: %v", err)
	}
}

func TestNormalizeTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			title:  "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "mixed case",
			title:  "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
		{
			name:   "empty fields",
			title:  "",
			artist: "",
			want:   "|",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrackKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("NormalizeTrackKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
