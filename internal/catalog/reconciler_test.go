package catalog

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

// writeAudioFile creates a placeholder audio file and returns its path.
func writeAudioFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestReconciler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("ReconcileAll removes stale entries", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		dir := t.TempDir()

		livePath := writeAudioFile(t, dir, "live.mp3")
		stalePath := filepath.Join(dir, "gone.mp3")

		if _, err := repo.Insert(testTrack("Live", "Artist", livePath)); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		if _, err := repo.Insert(testTrack("Gone", "Artist", stalePath)); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		rec := NewReconciler(repo, logger)
		stats := rec.ReconcileAll()

		if stats.Checked != 2 {
			t.Errorf("expected 2 checked, got %d", stats.Checked)
		}
		if stats.Removed != 1 {
			t.Errorf("expected 1 removed, got %d", stats.Removed)
		}
		if stats.Remaining != 1 {
			t.Errorf("expected 1 remaining, got %d", stats.Remaining)
		}

		all, err := repo.All()
		if err != nil {
			t.Fatalf("failed to enumerate: %v", err)
		}
		if len(all) != 1 || all[0].Title != "Live" {
			t.Errorf("expected only the live entry to survive, got %v", all)
		}
	})

	t.Run("ReconcileAll is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		dir := t.TempDir()

		if _, err := repo.Insert(testTrack("Live", "Artist", writeAudioFile(t, dir, "live.mp3"))); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		if _, err := repo.Insert(testTrack("Gone", "Artist", filepath.Join(dir, "gone.mp3"))); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		rec := NewReconciler(repo, logger)
		first := rec.ReconcileAll()
		second := rec.ReconcileAll()

		if first.Removed != 1 {
			t.Errorf("expected first pass to remove 1, got %d", first.Removed)
		}
		if second.Removed != 0 {
			t.Errorf("expected second pass to remove 0, got %d", second.Removed)
		}
		if second.Checked != first.Remaining {
			t.Errorf("expected second pass to check %d, got %d", first.Remaining, second.Checked)
		}
	})

	t.Run("Verify evicts missing file", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := testTrack("Gone", "Artist", filepath.Join(t.TempDir(), "gone.mp3"))
		id, err := repo.Insert(track)
		if err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		rec := NewReconciler(repo, logger)
		if rec.Verify(track) {
			t.Error("expected Verify to report missing file")
		}

		got, err := repo.GetByID(id)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got != nil {
			t.Error("expected entry to be evicted")
		}
	})

	t.Run("Verify keeps live file", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := testTrack("Live", "Artist", writeAudioFile(t, t.TempDir(), "live.mp3"))
		id, err := repo.Insert(track)
		if err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		rec := NewReconciler(repo, logger)
		if !rec.Verify(track) {
			t.Error("expected Verify to pass for existing file")
		}

		got, err := repo.GetByID(id)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got == nil {
			t.Error("expected entry to remain")
		}
	})

	t.Run("FilterLive", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		dir := t.TempDir()

		live := testTrack("Live", "Artist", writeAudioFile(t, dir, "live.mp3"))
		stale := testTrack("Gone", "Artist", filepath.Join(dir, "gone.mp3"))
		for _, track := range []*models.Track{live, stale} {
			if _, err := repo.Insert(track); err != nil {
				t.Fatalf("failed to insert: %v", err)
			}
		}

		rec := NewReconciler(repo, logger)
		got := rec.FilterLive([]*models.Track{live, stale})

		if len(got) != 1 || got[0].Title != "Live" {
			t.Errorf("expected only live track, got %v", got)
		}
	})
}
