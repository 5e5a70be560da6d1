package jukebox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jabberjabberjabber/llm-jukebox/internal/catalog"
	"github.com/jabberjabberjabber/llm-jukebox/internal/classifier"
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	"github.com/jabberjabberjabber/llm-jukebox/internal/provider"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

// Engine wires the provider, catalog, classifier, and player together.
type Engine struct {
	provider    provider.Service
	store       catalog.Store
	reconciler  *catalog.Reconciler
	player      AudioPlayer
	searchCache *catalog.SearchCache
	logger      *log.Logger
}

// NewEngine creates an engine over the given subsystems.
func NewEngine(svc provider.Service, store catalog.Store, reconciler *catalog.Reconciler, player AudioPlayer, logger *log.Logger) *Engine {
	return &Engine{
		provider:   svc,
		store:      store,
		reconciler: reconciler,
		player:     player,
		logger:     logger,
	}
}

// SetSearchCache enables caching of query-to-candidate resolutions.
func (e *Engine) SetSearchCache(cache *catalog.SearchCache) {
	e.searchCache = cache
}

// FetchAndPlay resolves a free-text query to a single song and plays it,
// reusing a cataloged copy when one is still on disk. A candidate the
// classifier rejects is reported as blocked and nothing is downloaded.
func (e *Engine) FetchAndPlay(ctx context.Context, query string) Outcome {
	query = strings.TrimSpace(query)
	if query == "" {
		return Outcome{Status: StatusFailed, Message: "Query must not be empty."}
	}

	candidate := e.cachedCandidate(query)
	if candidate == nil {
		var err error
		candidate, err = e.provider.SearchOne(ctx, query)
		if err != nil {
			e.logger.Error("search failed", "query", query, "error", err)
			return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Search failed: %v", err)}
		}

		if candidate == nil {
			return Outcome{Status: StatusNotFound, Message: fmt.Sprintf("No results for %q.", query)}
		}

		if e.searchCache != nil {
			if err := e.searchCache.Put(query, candidate); err != nil {
				e.logger.Warn("failed to cache search result", "query", query, "error", err)
			}
		}
	}

	verdict := classifier.Classify(candidate.Title, candidate.Duration, candidate.Description)
	if !verdict.IsSingleSong {
		e.logger.Info("candidate blocked", "title", candidate.Title, "confidence", verdict.Confidence)
		return Outcome{
			Status:    StatusBlocked,
			Message:   fmt.Sprintf("%q does not look like a single song.", candidate.Title),
			Candidate: candidate,
			Verdict:   &verdict,
		}
	}

	if track := e.findReusable(candidate); track != nil {
		return e.startPlayback(track, true, &verdict)
	}

	path, err := e.provider.Fetch(ctx, candidate, query)
	if err != nil {
		e.logger.Error("fetch failed", "title", candidate.Title, "error", err)
		return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Download failed: %v", err)}
	}

	track := models.NewTrack(candidate.Title, candidate.Uploader, path, candidate.Duration, query, candidate.WebpageURL)

	id, err := e.store.Insert(track)
	if err != nil {
		e.logger.Error("catalog insert failed", "path", path, "error", err)
		return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Could not catalog download: %v", err)}
	}

	track.ID = id

	return e.startPlayback(track, false, &verdict)
}

// Stop halts playback.
func (e *Engine) Stop() Outcome {
	if e.player.Stop() {
		return Outcome{Status: StatusStopped, Message: "Playback stopped."}
	}

	return Outcome{Status: StatusIdle, Message: "Nothing is currently playing."}
}

// Describe looks up metadata for a source URL and classifies it without
// downloading.
func (e *Engine) Describe(ctx context.Context, url string) Outcome {
	candidate, err := e.provider.Describe(ctx, url)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Outcome{Status: StatusNotFound, Message: fmt.Sprintf("No metadata for %q.", url)}
		}

		e.logger.Error("describe failed", "url", url, "error", err)
		return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Lookup failed: %v", err)}
	}

	verdict := classifier.Classify(candidate.Title, candidate.Duration, candidate.Description)

	return Outcome{
		Status:    StatusInfo,
		Message:   fmt.Sprintf("%s by %s (%s)", candidate.Title, candidate.Uploader, models.FormatDuration(candidate.Duration)),
		Candidate: candidate,
		Verdict:   &verdict,
	}
}

// ListLibrary returns cataloged tracks, newest first, with stale entries
// evicted as they are encountered.
func (e *Engine) ListLibrary(opts ListOptions) ([]*models.Track, error) {
	var (
		tracks []*models.Track
		err    error
	)

	if term := strings.TrimSpace(opts.Search); term != "" {
		tracks, err = e.store.Search([]string{"title", "artist"}, term)
	} else {
		tracks, err = e.store.All()
	}

	if err != nil {
		return nil, err
	}

	if artist := strings.TrimSpace(opts.Artist); artist != "" {
		tracks = filterByArtist(tracks, artist)
	}

	tracks = e.reconciler.FilterLive(tracks)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	if len(tracks) > limit {
		tracks = tracks[:limit]
	}

	return tracks, nil
}

// PlayFromLibrary plays a cataloged track addressed by ID or by title
// substring. Several title matches come back as an ambiguous outcome
// listing up to [AmbiguousLimit] of them.
func (e *Engine) PlayFromLibrary(identifier string) Outcome {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Outcome{Status: StatusFailed, Message: "Track ID or title must not be empty."}
	}

	track, err := e.store.GetByID(identifier)
	if err != nil {
		e.logger.Error("catalog lookup failed", "id", identifier, "error", err)
		return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Library lookup failed: %v", err)}
	}

	if track != nil {
		return e.startPlayback(track, true, nil)
	}

	matches, err := e.store.Search([]string{"title"}, identifier)
	if err != nil {
		e.logger.Error("catalog search failed", "term", identifier, "error", err)
		return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Library search failed: %v", err)}
	}

	matches = e.reconciler.FilterLive(matches)

	switch len(matches) {
	case 0:
		return Outcome{Status: StatusNotFound, Message: fmt.Sprintf("No library track matches %q.", identifier)}
	case 1:
		return e.startPlayback(matches[0], true, nil)
	default:
		if len(matches) > AmbiguousLimit {
			matches = matches[:AmbiguousLimit]
		}

		return Outcome{
			Status:  StatusAmbiguous,
			Message: fmt.Sprintf("%q matches several tracks; play one by ID.", identifier),
			Matches: matches,
		}
	}
}

// Remove evicts a catalog entry by ID. The audio file stays on disk.
func (e *Engine) Remove(id string) error {
	return e.store.DeleteByID(id)
}

// Reconcile verifies every catalog entry against the filesystem.
func (e *Engine) Reconcile() catalog.Stats {
	return e.reconciler.ReconcileAll()
}

// NowPlaying returns the current track, or nil when idle.
func (e *Engine) NowPlaying() *models.Track {
	return e.player.NowPlaying()
}

// Wait blocks until playback finishes or the context ends.
func (e *Engine) Wait(ctx context.Context) error {
	return e.player.Wait(ctx)
}

// startPlayback plays the track, converting playback failures into
// outcomes. A track whose file went missing is evicted on the spot.
func (e *Engine) startPlayback(track *models.Track, reused bool, verdict *classifier.Verdict) Outcome {
	if err := e.player.Play(track); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			e.logger.Warn("evicting stale track", "id", track.ID, "path", track.FilePath)

			if delErr := e.store.DeleteByID(track.ID); delErr != nil {
				e.logger.Warn("failed to evict stale track", "id", track.ID, "error", delErr)
			}

			return Outcome{Status: StatusNotFound, Message: fmt.Sprintf("File for %q is missing; removed it from the library.", track.Title)}
		}

		e.logger.Error("playback failed", "title", track.Title, "error", err)
		return Outcome{Status: StatusFailed, Message: fmt.Sprintf("Playback failed: %v", err)}
	}

	verb := "Downloaded and playing"
	if reused {
		verb = "Playing from library"
	}

	return Outcome{
		Status:  StatusPlaying,
		Message: fmt.Sprintf("%s: %s by %s.", verb, track.Title, track.Artist),
		Track:   track,
		Reused:  reused,
		Verdict: verdict,
	}
}

// cachedCandidate returns the cached resolution for a query, or nil when
// caching is disabled, the entry is missing, or the lookup fails.
func (e *Engine) cachedCandidate(query string) *models.Candidate {
	if e.searchCache == nil {
		return nil
	}

	candidate, err := e.searchCache.Get(query)
	if err != nil {
		e.logger.Warn("search cache lookup failed", "query", query, "error", err)
		return nil
	}

	if candidate != nil {
		e.logger.Debug("search cache hit", "query", query, "title", candidate.Title)
	}

	return candidate
}

// findReusable scans the catalog for a live copy of the candidate. Stale
// entries found along the way are evicted.
func (e *Engine) findReusable(candidate *models.Candidate) *models.Track {
	matches, err := e.store.Search([]string{"title"}, candidate.Title)
	if err != nil {
		e.logger.Warn("reuse lookup failed", "title", candidate.Title, "error", err)
		return nil
	}

	key := shared.NormalizeTrackKey(candidate.Title, candidate.Uploader)
	for _, track := range matches {
		if shared.NormalizeTrackKey(track.Title, track.Artist) != key {
			continue
		}

		if e.reconciler.Verify(track) {
			e.logger.Info("reusing cataloged track", "id", track.ID, "path", track.FilePath)
			return track
		}
	}

	return nil
}

func filterByArtist(tracks []*models.Track, artist string) []*models.Track {
	needle := strings.ToLower(artist)

	filtered := tracks[:0]
	for _, track := range tracks {
		if strings.Contains(strings.ToLower(track.Artist), needle) {
			filtered = append(filtered, track)
		}
	}

	return filtered
}
