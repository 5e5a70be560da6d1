// package jukebox orchestrates the fetch-classify-catalog-play pipeline
//
// The engine is the boundary between callers and the subsystems: provider
// failures, classifier rejections, and playback problems all come back as
// reportable outcomes rather than errors, so a bad download or a missing
// file never takes the process down.
package jukebox

import (
	"context"

	"github.com/jabberjabberjabber/llm-jukebox/internal/classifier"
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// DefaultListLimit caps library listings when the caller does not ask for a
// specific size.
const DefaultListLimit = 20

// AmbiguousLimit caps how many matches an ambiguous play request reports.
const AmbiguousLimit = 5

// Status classifies the terminal state of an engine operation.
type Status string

const (
	// StatusPlaying means playback of a track has started.
	StatusPlaying Status = "playing"
	// StatusBlocked means the classifier rejected the candidate.
	StatusBlocked Status = "blocked"
	// StatusNotFound means no candidate or track matched the request.
	StatusNotFound Status = "not_found"
	// StatusAmbiguous means a library request matched several tracks.
	StatusAmbiguous Status = "ambiguous"
	// StatusStopped means a stop request halted playback.
	StatusStopped Status = "stopped"
	// StatusIdle means a stop request found nothing playing.
	StatusIdle Status = "idle"
	// StatusInfo means a metadata request succeeded.
	StatusInfo Status = "info"
	// StatusFailed means a subsystem failed mid-pipeline.
	StatusFailed Status = "failed"
)

// Outcome is the engine's report for one operation. Message is always set
// and human readable; the other fields are populated per status.
type Outcome struct {
	Status    Status              `json:"status"`
	Message   string              `json:"message"`
	Track     *models.Track       `json:"track,omitempty"`
	Reused    bool                `json:"reused,omitempty"`
	Candidate *models.Candidate   `json:"candidate,omitempty"`
	Verdict   *classifier.Verdict `json:"verdict,omitempty"`
	Matches   []*models.Track     `json:"matches,omitempty"`
}

// AudioPlayer is the playback surface the engine drives.
type AudioPlayer interface {
	Play(track *models.Track) error
	Stop() bool
	NowPlaying() *models.Track
	Wait(ctx context.Context) error
}

// ListOptions filters a library listing. A zero value lists the newest
// [DefaultListLimit] tracks.
type ListOptions struct {
	Limit  int
	Artist string
	Search string
}
