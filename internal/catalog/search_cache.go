package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// DefaultSearchTTL is how long a cached search result stays fresh.
const DefaultSearchTTL = 24 * time.Hour

// SearchCache remembers which candidate a free-text query resolved to, so
// repeating a query skips the provider search. Entries expire after the
// TTL; a stale hit is treated as a miss and overwritten on the next Put.
type SearchCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSearchCache creates a cache over the catalog database. A zero ttl
// uses [DefaultSearchTTL].
func NewSearchCache(db *sql.DB, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}

	return &SearchCache{db: db, ttl: ttl}
}

// Get returns the cached candidate for a query, or nil on a miss or an
// expired entry.
func (c *SearchCache) Get(query string) (*models.Candidate, error) {
	row := c.db.QueryRow(
		`SELECT candidate_id, title, uploader, duration, description, webpage_url, cached_at
		 FROM searches WHERE query_key = ?`,
		queryKey(query),
	)

	var (
		id, title, uploader, url string
		duration                 sql.NullInt64
		description              sql.NullString
		cachedAt                 time.Time
	)

	err := row.Scan(&id, &title, &uploader, &duration, &description, &url, &cachedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read search cache: %w", err)
	}

	if time.Since(cachedAt) > c.ttl {
		return nil, nil
	}

	return models.NewCandidate(id, title, uploader, int(duration.Int64), description.String, url), nil
}

// Put records the candidate a query resolved to, replacing any previous
// entry for the same query.
func (c *SearchCache) Put(query string, candidate *models.Candidate) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO searches
		 (query_key, candidate_id, title, uploader, duration, description, webpage_url, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		queryKey(query),
		candidate.ID,
		candidate.Title,
		candidate.Uploader,
		nullableDuration(candidate.Duration),
		sql.NullString{String: candidate.Description, Valid: candidate.Description != ""},
		candidate.WebpageURL,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}

	return nil
}

// Prune removes expired entries and returns how many were deleted.
func (c *SearchCache) Prune() (int, error) {
	result, err := c.db.Exec(`DELETE FROM searches WHERE cached_at < ?`, time.Now().Add(-c.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to prune search cache: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned entries: %w", err)
	}

	return int(removed), nil
}

// queryKey lowercases and whitespace-collapses a query so trivially
// different spellings share a cache entry.
func queryKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
