package models

import (
	"testing"
	"time"
)

func TestNewTrack(t *testing.T) {
	t.Run("applies fallbacks for empty metadata", func(t *testing.T) {
		track := NewTrack("", "  ", "/music/a.mp3", -5, "some query", "")

		if track.Title != UnknownTitle {
			t.Errorf("expected %q, got %q", UnknownTitle, track.Title)
		}
		if track.Artist != UnknownArtist {
			t.Errorf("expected %q, got %q", UnknownArtist, track.Artist)
		}
		if track.Duration != 0 {
			t.Errorf("expected negative duration clamped to 0, got %d", track.Duration)
		}
		if track.DownloadedAt.IsZero() {
			t.Error("expected DownloadedAt to be set")
		}
	})

	t.Run("keeps provided metadata", func(t *testing.T) {
		track := NewTrack("Song", "Artist", "/music/a.mp3", 210, "q", "https://example.com/watch?v=1")

		if track.Title != "Song" || track.Artist != "Artist" {
			t.Errorf("unexpected metadata: %q / %q", track.Title, track.Artist)
		}
		if track.Duration != 210 {
			t.Errorf("expected duration 210, got %d", track.Duration)
		}
	})
}

func TestTrackValidate(t *testing.T) {
	valid := &Track{Title: "Song", Artist: "Artist", FilePath: "/music/a.mp3", DownloadedAt: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid track, got %v", err)
	}

	missingPath := &Track{Title: "Song", Artist: "Artist"}
	if err := missingPath.Validate(); err == nil {
		t.Error("expected error for missing file path")
	}

	negative := &Track{Title: "Song", Artist: "Artist", FilePath: "/a.mp3", Duration: -1}
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestTrackFilename(t *testing.T) {
	track := &Track{FilePath: "/music/sub/Artist - Song.mp3"}
	if got := track.Filename(); got != "Artist - Song.mp3" {
		t.Errorf("expected base name, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{210, "3:30"},
		{3600, "60:00"},
	}

	for _, tt := range tc {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}

	track := &Track{Duration: 0}
	if track.DurationString() != "" {
		t.Error("expected empty duration string for unknown duration")
	}
}

func TestNewCandidate(t *testing.T) {
	c := NewCandidate("abc123", "", "", -1, "", "https://example.com/watch?v=abc123")

	if c.Title != UnknownTitle || c.Uploader != UnknownArtist {
		t.Errorf("expected fallbacks, got %q / %q", c.Title, c.Uploader)
	}
	if c.Duration != 0 {
		t.Errorf("expected duration 0, got %d", c.Duration)
	}
}
