package catalog

import (
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// Store defines the document-store operations the jukebox needs from its
// catalog. All operations are local and synchronous; there are no
// transactions spanning multiple calls.
type Store interface {
	// Insert adds a track and returns its assigned ID. Insertion is
	// idempotent on FilePath: when an entry with the same path already
	// exists, the existing entry's ID is returned and nothing is written.
	Insert(track *models.Track) (string, error)

	// GetByID retrieves a track by ID, returning nil when absent.
	GetByID(id string) (*models.Track, error)

	// FindByFilePath retrieves tracks whose file_path matches exactly.
	FindByFilePath(path string) ([]*models.Track, error)

	// Search retrieves tracks where any of the named fields ("title",
	// "artist") contains the pattern, case-insensitively.
	Search(fields []string, pattern string) ([]*models.Track, error)

	// All enumerates every track, newest first.
	All() ([]*models.Track, error)

	// DeleteByID removes a track by ID. Deleting an absent ID is not an
	// error.
	DeleteByID(id string) error
}
