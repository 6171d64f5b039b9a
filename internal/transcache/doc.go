// Package transcache caches raw whisper results keyed by audio content so
// repeated runs over the same material reuse a prior transcription.
package transcache
