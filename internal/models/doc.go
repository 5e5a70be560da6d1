// Package models defines the domain entities for the jukebox service.
//
// The package contains two categories of types:
//
// 1. Persisted entities:
//   - [Track] : One downloaded audio asset in the library catalog
//
// 2. Ephemeral values:
//   - [Candidate] : Unvalidated provider search result metadata, not yet downloaded
//
// Track rows are immutable after insertion: they are created by the fetch
// controller once a download succeeds and destroyed whenever their backing
// file is found missing. Candidate values are validated once at the provider
// boundary ([NewCandidate]) so downstream code never handles absent fields.
package models
