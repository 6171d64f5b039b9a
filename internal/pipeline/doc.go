// Package pipeline sequences the three stages of subtitle generation:
// audio extraction, transcription, and SRT formatting. Stages run strictly in
// order; each external call is attempted exactly once.
package pipeline
