// package provider defines interface Service for locating and materializing
// audio from external sources
//
// YouTube (via yt-dlp)
package provider

import (
	"context"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// Service defines the contract for audio source providers that can search
// for candidates and materialize them into local audio files.
type Service interface {
	// SearchOne returns the best single candidate for a free-text query.
	// Zero results is (nil, nil), not an error; failures wrap
	// [shared.ErrProvider].
	SearchOne(ctx context.Context, query string) (*models.Candidate, error)

	// Fetch materializes the candidate into a local, transcoded audio file
	// and returns the final file path, which may differ from the requested
	// output template.
	Fetch(ctx context.Context, candidate *models.Candidate, query string) (string, error)

	// Describe returns metadata for a source URL without downloading.
	Describe(ctx context.Context, url string) (*models.Candidate, error)

	// Name returns the name of the provider (e.g. "yt-dlp")
	Name() string
}
