package whisper

import (
	"context"
	"os/exec"
	"strings"

	"scribe/internal/services"
)

// ExtractAudio extracts the audio track from a source file. The output is a
// mono 16kHz WAV file suitable for whisper. An existing destination is
// overwritten. A non-zero ffmpeg exit is tagged services.ErrExternalTool so
// the CLI can map it to its dedicated exit code.
func ExtractAudio(ctx context.Context, ffmpegBinary, source, dest string) error {
	args := buildFFmpegExtractArgs(source, dest)
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = "conversion failed"
		}
		return services.Wrap(services.ErrExternalTool, "extract", "ffmpeg", detail, err)
	}
	return nil
}

func buildFFmpegExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-ac", "1",
		"-ar", "16000",
		"-vn",
		dest,
	}
}
