package catalog

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// Stats summarizes one reconciliation pass over the catalog.
type Stats struct {
	Checked   int `json:"checked"`
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// Reconciler verifies catalog entries against the filesystem and evicts
// entries whose backing file is missing.
type Reconciler struct {
	store  Store
	logger *log.Logger
}

// NewReconciler creates a Reconciler over the given store.
func NewReconciler(store Store, logger *log.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// ReconcileAll enumerates every catalog entry, checks file existence and
// deletes stale entries. Never fails fatally: a filesystem or store error on
// one entry counts that entry as missing and the batch continues.
func (r *Reconciler) ReconcileAll() Stats {
	stats := Stats{}

	tracks, err := r.store.All()
	if err != nil {
		r.logger.Error("failed to enumerate catalog", "error", err)
		return stats
	}

	for _, track := range tracks {
		stats.Checked++
		if r.Verify(track) {
			stats.Remaining++
		} else {
			stats.Removed++
		}
	}

	return stats
}

// Verify reports whether the track's audio file still exists, evicting the
// catalog entry when it does not. A stat error is treated as missing.
func (r *Reconciler) Verify(track *models.Track) bool {
	if _, err := os.Stat(track.FilePath); err == nil {
		return true
	}

	r.logger.Info("evicting stale catalog entry", "id", track.ID, "title", track.Title, "path", track.FilePath)
	if err := r.store.DeleteByID(track.ID); err != nil {
		// The entry stays for a later pass; still report it as stale
		r.logger.Warn("failed to evict stale entry", "id", track.ID, "error", err)
	}

	return false
}

// FilterLive returns only the tracks whose files exist, evicting the rest.
func (r *Reconciler) FilterLive(tracks []*models.Track) []*models.Track {
	live := make([]*models.Track, 0, len(tracks))
	for _, track := range tracks {
		if r.Verify(track) {
			live = append(live, track)
		}
	}
	return live
}
