package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

// searchableFields are the columns Search accepts; anything else is ignored
// rather than interpolated into SQL.
var searchableFields = map[string]string{
	"title":  "title",
	"artist": "artist",
}

// TrackRepository implements [Store] over SQLite.
type TrackRepository struct {
	db *sql.DB
}

var _ Store = (*TrackRepository)(nil)

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Insert adds a [models.Track] with a generated ID, skipping insertion when
// an entry with the same file path already exists.
func (r *TrackRepository) Insert(track *models.Track) (string, error) {
	if err := track.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	// Dedup by file path; tolerates the duplicate race by re-checking here
	// rather than relying on callers.
	existing, err := r.FindByFilePath(track.FilePath)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		track.ID = existing[0].ID
		return existing[0].ID, nil
	}

	id := shared.GenerateID()
	track.ID = id

	query := `
		INSERT INTO tracks (id, title, artist, file_path, duration, source_query, source_url, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		track.Title,
		track.Artist,
		track.FilePath,
		nullableDuration(track.Duration),
		track.SourceQuery,
		track.SourceURL,
		track.DownloadedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert track: %w", err)
	}

	return id, nil
}

// GetByID retrieves a track by ID. Returns nil without an error when the ID
// is unknown.
func (r *TrackRepository) GetByID(id string) (*models.Track, error) {
	query := selectColumns + ` WHERE id = ?`

	track, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return track, err
}

// FindByFilePath retrieves tracks whose file_path matches exactly.
func (r *TrackRepository) FindByFilePath(path string) ([]*models.Track, error) {
	query := selectColumns + ` WHERE file_path = ?`

	rows, err := r.db.Query(query, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Search retrieves tracks where any of the named fields contains the
// pattern, case-insensitively. Unknown field names are skipped.
func (r *TrackRepository) Search(fields []string, pattern string) ([]*models.Track, error) {
	var clauses []string
	var args []any

	for _, f := range fields {
		column, ok := searchableFields[f]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s LIKE ? ESCAPE '\\'", column))
		args = append(args, "%"+escapeLike(pattern)+"%")
	}

	if len(clauses) == 0 {
		return nil, fmt.Errorf("%w: no searchable fields in %v", shared.ErrInvalidArgument, fields)
	}

	query := selectColumns + ` WHERE ` + strings.Join(clauses, " OR ") + ` ORDER BY downloaded_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// All enumerates every track, newest first.
func (r *TrackRepository) All() ([]*models.Track, error) {
	query := selectColumns + ` ORDER BY downloaded_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// DeleteByID removes a track by ID.
func (r *TrackRepository) DeleteByID(id string) error {
	_, err := r.db.Exec(`DELETE FROM tracks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, title, artist, file_path, duration, source_query, source_url, downloaded_at
	FROM tracks
`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRow scans one result row into a [models.Track].
func (r *TrackRepository) scanRow(row rowScanner) (*models.Track, error) {
	var (
		track       models.Track
		duration    sql.NullInt64
		sourceQuery sql.NullString
		sourceURL   sql.NullString
	)

	err := row.Scan(&track.ID, &track.Title, &track.Artist, &track.FilePath, &duration, &sourceQuery, &sourceURL, &track.DownloadedAt)
	if err != nil {
		return nil, err
	}

	if duration.Valid {
		track.Duration = int(duration.Int64)
	}
	track.SourceQuery = sourceQuery.String
	track.SourceURL = sourceURL.String

	return &track, nil
}

func (r *TrackRepository) scanOne(row *sql.Row) (*models.Track, error) {
	track, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}
	return track, nil
}

func (r *TrackRepository) scanAll(rows *sql.Rows) ([]*models.Track, error) {
	var tracks []*models.Track
	for rows.Next() {
		track, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

func nullableDuration(d int) any {
	if d <= 0 {
		return nil
	}
	return d
}

// escapeLike escapes LIKE wildcards in user-supplied patterns.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
