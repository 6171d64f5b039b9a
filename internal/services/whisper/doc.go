// Package whisper wraps the external whisper CLI: mono 16kHz audio
// extraction via ffmpeg, model invocation, and defensive normalization of the
// JSON result into an ordered segment sequence.
package whisper
