// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for the music library:
//  1. [LibraryView] : Browse cataloged tracks, play, stop, and evict entries
//  2. [FetchView] : Enter a free-text query to fetch and play a new song
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Engine calls run inside tea commands so downloads never block rendering; their
// outcomes come back as messages and land in the status line.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
