package formatter

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jabberjabberjabber/llm-jukebox/internal/catalog"
	"github.com/jabberjabberjabber/llm-jukebox/internal/classifier"
	"github.com/jabberjabberjabber/llm-jukebox/internal/jukebox"
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	jtesting "github.com/jabberjabberjabber/llm-jukebox/internal/testing"
)

func classifyCompilation() classifier.Verdict {
	return classifier.Classify("Greatest Hits Full Album", 3600, "")
}

func sampleTracks() []*models.Track {
	return []*models.Track{
		{
			ID:           "id-1",
			Title:        "Midnight Drive",
			Artist:       "Alpha Band",
			FilePath:     "/music/Midnight_Drive.mp3",
			Duration:     214,
			DownloadedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           "id-2",
			Title:        "Morning Walk",
			Artist:       "Beta Band",
			FilePath:     "/music/Morning_Walk.mp3",
			DownloadedAt: time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestLibraryToText(t *testing.T) {
	t.Run("numbered listing", func(t *testing.T) {
		out := string(LibraryToText(sampleTracks()))

		if !strings.Contains(out, "Tracks: 2") {
			t.Errorf("expected track count, got %q", out)
		}

		if !strings.Contains(out, "1. Alpha Band - Midnight Drive [3:34] (id-1)") {
			t.Errorf("expected formatted first line, got %q", out)
		}

		if !strings.Contains(out, "2. Beta Band - Morning Walk (id-2)") {
			t.Errorf("expected no duration brackets for unknown duration, got %q", out)
		}
	})

	t.Run("empty library", func(t *testing.T) {
		out := string(LibraryToText(nil))

		if !strings.Contains(out, "Library is empty") {
			t.Errorf("expected empty message, got %q", out)
		}
	})
}

func TestLibraryToCSV(t *testing.T) {
	data, err := LibraryToCSV(sampleTracks())
	if err != nil {
		t.Fatalf("LibraryToCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}

	if lines[0] != "ID,Title,Artist,Duration,FilePath,DownloadedAt" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	if !strings.Contains(lines[1], "Midnight Drive") || !strings.Contains(lines[1], "214") {
		t.Errorf("unexpected first record: %q", lines[1])
	}
}

func TestLibraryToMarkdown(t *testing.T) {
	out := string(LibraryToMarkdown("Music Library", sampleTracks()))

	if !strings.HasPrefix(out, "# Music Library") {
		t.Errorf("expected title heading, got %q", out)
	}

	if !strings.Contains(out, "**Tracks**: 2") {
		t.Errorf("expected track count, got %q", out)
	}

	if !strings.Contains(out, "2. Beta Band - Morning Walk [?]") {
		t.Errorf("expected placeholder duration, got %q", out)
	}
}

func TestLibraryToJSON(t *testing.T) {
	data, err := LibraryToJSON(sampleTracks())
	if err != nil {
		t.Fatalf("LibraryToJSON failed: %v", err)
	}

	var decoded []*models.Track
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded) != 2 || decoded[0].ID != "id-1" {
		t.Errorf("unexpected decoded listing: %+v", decoded)
	}
}

func TestOutcomeToText(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		outcome := jukebox.Outcome{Status: jukebox.StatusStopped, Message: "Playback stopped."}

		out := string(OutcomeToText(outcome))
		if out != "Playback stopped.\n" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("includes verdict reasons", func(t *testing.T) {
		verdict := classifyCompilation()
		outcome := jukebox.Outcome{
			Status:  jukebox.StatusBlocked,
			Message: "Blocked.",
			Verdict: &verdict,
		}

		out := string(OutcomeToText(outcome))

		if !strings.Contains(out, "not a single song") {
			t.Errorf("expected verdict summary, got %q", out)
		}

		if !strings.Contains(out, "  - ") {
			t.Errorf("expected reason bullets, got %q", out)
		}
	})

	t.Run("includes ambiguous matches", func(t *testing.T) {
		outcome := jukebox.Outcome{
			Status:  jukebox.StatusAmbiguous,
			Message: "Several matches.",
			Matches: sampleTracks(),
		}

		out := string(OutcomeToText(outcome))

		if !strings.Contains(out, "Midnight Drive") || !strings.Contains(out, "Morning Walk") {
			t.Errorf("expected listed matches, got %q", out)
		}
	})
}

func TestOutcomeToJSON(t *testing.T) {
	outcome := jukebox.Outcome{Status: jukebox.StatusIdle, Message: "Nothing is currently playing."}

	data, err := OutcomeToJSON(outcome)
	if err != nil {
		t.Fatalf("OutcomeToJSON failed: %v", err)
	}

	var decoded jukebox.Outcome
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Status != jukebox.StatusIdle {
		t.Errorf("expected idle status, got %s", decoded.Status)
	}
}

func TestStatsToText(t *testing.T) {
	out := string(StatsToText(catalog.Stats{Checked: 3, Removed: 1, Remaining: 2}))

	if !strings.Contains(out, "Checked 3 tracks: 1 missing removed, 2 remaining.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestWriteLibraryExport(t *testing.T) {
	tracks := sampleTracks()

	cases := []struct {
		name     string
		filename string
		marker   string
	}{
		{"csv", "library.csv", "ID,Title,Artist"},
		{"markdown", "library.md", "# Music Library"},
		{"json", "library.json", "\"id\": \"id-1\""},
		{"text", "library.txt", "Tracks: 2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.filename)

			written, err := WriteLibraryExport(tracks, path)
			if err != nil {
				t.Fatalf("WriteLibraryExport failed: %v", err)
			}

			if written != path {
				t.Errorf("expected path %q, got %q", path, written)
			}

			jtesting.AssertFileExists(t, path)

			if content := jtesting.MustReadFile(t, path); !strings.Contains(content, tc.marker) {
				t.Errorf("expected %q in export, got %q", tc.marker, content)
			}
		})
	}

	t.Run("default filename", func(t *testing.T) {
		wd := jtesting.MustGetwd(t)
		jtesting.MustChdir(t, t.TempDir())
		defer jtesting.MustChdir(t, wd)

		written, err := WriteLibraryExport(tracks, "")
		if err != nil {
			t.Fatalf("WriteLibraryExport failed: %v", err)
		}

		if written != "library_tracks.txt" {
			t.Errorf("expected default filename, got %q", written)
		}

		jtesting.AssertFileExists(t, written)
	})
}
