package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Fallback display strings for provider metadata that arrives empty.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// Track represents one downloaded audio asset in the library catalog.
//
// FilePath is the join key between catalog state and filesystem state: a
// track is live only while its file exists on disk, and FilePath is unique
// among live tracks.
type Track struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	FilePath     string    `json:"file_path"`
	Duration     int       `json:"duration,omitempty"` // Seconds, 0 when unknown
	SourceQuery  string    `json:"source_query,omitempty"`
	SourceURL    string    `json:"source_url,omitempty"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// NewTrack constructs a Track from provider metadata, applying the
// display-string fallbacks. The ID is assigned by the catalog store at
// insertion.
func NewTrack(title, artist, filePath string, duration int, query, url string) *Track {
	if strings.TrimSpace(title) == "" {
		title = UnknownTitle
	}
	if strings.TrimSpace(artist) == "" {
		artist = UnknownArtist
	}
	if duration < 0 {
		duration = 0
	}

	return &Track{
		Title:        title,
		Artist:       artist,
		FilePath:     filePath,
		Duration:     duration,
		SourceQuery:  query,
		SourceURL:    url,
		DownloadedAt: time.Now(),
	}
}

// Filename returns the base name of the track's audio file.
func (t *Track) Filename() string {
	return filepath.Base(t.FilePath)
}

// DurationString formats the track duration as m:ss, or "" when unknown.
func (t *Track) DurationString() string {
	if t.Duration <= 0 {
		return ""
	}
	return FormatDuration(t.Duration)
}

// Validate checks the invariants that must hold before insertion.
func (t *Track) Validate() error {
	if t.Title == "" || t.Artist == "" {
		return fmt.Errorf("track title and artist must not be empty")
	}
	if t.FilePath == "" {
		return fmt.Errorf("track file path must not be empty")
	}
	if t.Duration < 0 {
		return fmt.Errorf("track duration must not be negative")
	}
	return nil
}

// Candidate represents one provider search result that has not been
// downloaded. Fields are defaulted once at construction, never at use sites.
type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Uploader    string `json:"uploader"`
	Duration    int    `json:"duration,omitempty"` // Seconds, 0 when unknown
	Description string `json:"description,omitempty"`
	WebpageURL  string `json:"webpage_url"`
}

// NewCandidate constructs a Candidate with display-string fallbacks applied.
func NewCandidate(id, title, uploader string, duration int, description, url string) *Candidate {
	if strings.TrimSpace(title) == "" {
		title = UnknownTitle
	}
	if strings.TrimSpace(uploader) == "" {
		uploader = UnknownArtist
	}
	if duration < 0 {
		duration = 0
	}

	return &Candidate{
		ID:          id,
		Title:       title,
		Uploader:    uploader,
		Duration:    duration,
		Description: description,
		WebpageURL:  url,
	}
}

// FormatDuration renders a duration in seconds as m:ss.
func FormatDuration(seconds int) string {
	mins := seconds / 60
	secs := seconds % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
