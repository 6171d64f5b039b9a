// Package ffprobe wraps the ffprobe CLI for container inspection.
package ffprobe
