package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track *models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title + " " + i.track.Artist }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if d := i.track.DurationString(); d != "" {
		desc = fmt.Sprintf("%s • %s", desc, d)
	}
	return desc
}

func trackItems(tracks []*models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}
	return items
}
