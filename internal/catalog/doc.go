// Package catalog provides the persistence layer for the music library.
//
// [Store] is the document-store contract consumed by the fetch controller;
// [TrackRepository] implements it over SQLite. [Reconciler] verifies catalog
// rows against filesystem reality and evicts entries whose audio file has
// gone missing. A missing file is a routine occurrence, not an error.
package catalog
