// package formatter provides functions to render library listings and
// engine reports to various formats (plain text, CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jabberjabberjabber/llm-jukebox/internal/catalog"
	"github.com/jabberjabberjabber/llm-jukebox/internal/jukebox"
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

// LibraryToText renders tracks as a numbered plain-text listing.
func LibraryToText(tracks []*models.Track) []byte {
	var buf bytes.Buffer

	if len(tracks) == 0 {
		buf.WriteString("Library is empty.\n")
		return buf.Bytes()
	}

	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		duration := track.DurationString()
		if duration != "" {
			duration = " [" + duration + "]"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s (%s)\n", i+1, track.Artist, track.Title, duration, track.ID))
	}

	return buf.Bytes()
}

// LibraryToCSV renders tracks as CSV with columns: ID, Title, Artist, Duration, FilePath, DownloadedAt
func LibraryToCSV(tracks []*models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Duration", "FilePath", "DownloadedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			strconv.Itoa(track.Duration),
			track.FilePath,
			track.DownloadedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// LibraryToMarkdown renders tracks as a Markdown document.
func LibraryToMarkdown(title string, tracks []*models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	for i, track := range tracks {
		duration := track.DurationString()
		if duration == "" {
			duration = "?"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, track.Artist, track.Title, duration))
	}

	return buf.Bytes()
}

// LibraryToJSON renders tracks as indented JSON.
func LibraryToJSON(tracks []*models.Track) ([]byte, error) {
	return shared.MarshalJSON(tracks, true)
}

// OutcomeToText renders an engine outcome for the terminal.
func OutcomeToText(outcome jukebox.Outcome) []byte {
	var buf bytes.Buffer

	buf.WriteString(outcome.Message)
	buf.WriteString("\n")

	if outcome.Verdict != nil {
		buf.WriteString(fmt.Sprintf("\nVerdict: %s (confidence %s, %d red / %d green)\n",
			verdictWord(outcome.Verdict.IsSingleSong), outcome.Verdict.Confidence,
			outcome.Verdict.RedFlags, outcome.Verdict.GreenFlags))

		for _, reason := range outcome.Verdict.Reasons {
			buf.WriteString("  - " + reason + "\n")
		}
	}

	if len(outcome.Matches) > 0 {
		buf.WriteString("\n")
		buf.Write(LibraryToText(outcome.Matches))
	}

	return buf.Bytes()
}

// OutcomeToJSON renders an engine outcome as indented JSON.
func OutcomeToJSON(outcome jukebox.Outcome) ([]byte, error) {
	return shared.MarshalJSON(outcome, true)
}

// StatsToText renders reconciliation stats as one line.
func StatsToText(stats catalog.Stats) []byte {
	return []byte(fmt.Sprintf("Checked %d tracks: %d missing removed, %d remaining.\n",
		stats.Checked, stats.Removed, stats.Remaining))
}

// StatsToJSON renders reconciliation stats as indented JSON.
func StatsToJSON(stats catalog.Stats) ([]byte, error) {
	return shared.MarshalJSON(stats, true)
}

// WriteLibraryExport writes a library listing to a file, picking the format
// from the extension (.csv, .md, .json, anything else is plain text).
func WriteLibraryExport(tracks []*models.Track, path string) (string, error) {
	if path == "" {
		path = "library_tracks.txt"
	}

	var (
		data []byte
		err  error
	)

	switch {
	case strings.HasSuffix(path, ".csv"):
		data, err = LibraryToCSV(tracks)
	case strings.HasSuffix(path, ".md"):
		data = LibraryToMarkdown("Music Library", tracks)
	case strings.HasSuffix(path, ".json"):
		data, err = LibraryToJSON(tracks)
	default:
		data = LibraryToText(tracks)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate export: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func verdictWord(isSingleSong bool) string {
	if isSingleSong {
		return "single song"
	}
	return "not a single song"
}
