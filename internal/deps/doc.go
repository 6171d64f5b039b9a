// Package deps probes the external binaries scribe invokes (ffmpeg, ffprobe,
// whisper) so missing tools surface as clear diagnostics before any work runs.
package deps
