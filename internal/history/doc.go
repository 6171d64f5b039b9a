// Package history persists a record of past transcription runs in SQLite,
// surfaced by the `scribe history` command.
package history
