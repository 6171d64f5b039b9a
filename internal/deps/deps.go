package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary scribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	InstallHint string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	InstallHint string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external tools for the given binary names.
func Requirements(ffmpeg, ffprobe, whisper string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Extracts mono 16kHz audio from the input video",
			InstallHint: "install ffmpeg (e.g. `apt install ffmpeg` or `brew install ffmpeg`) and ensure it is on PATH",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Inspects container duration and streams",
			InstallHint: "ffprobe ships with ffmpeg; install ffmpeg and ensure it is on PATH",
			Optional:    true,
		},
		{
			Name:        "Whisper",
			Command:     whisper,
			Description: "Speech recognition model CLI",
			InstallHint: "install openai-whisper (`pip install -U openai-whisper`) and ensure it is on PATH",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			InstallHint: strings.TrimSpace(req.InstallHint),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Probe resolves a single binary and returns an actionable error when it is
// absent. Used by pipeline stages before their first external invocation.
func Probe(req Requirement) error {
	cmd := strings.TrimSpace(req.Command)
	if cmd == "" {
		return fmt.Errorf("%s: command not configured", req.Name)
	}
	if _, err := exec.LookPath(cmd); err != nil {
		hint := req.InstallHint
		if hint == "" {
			hint = "ensure the binary is on PATH"
		}
		return fmt.Errorf("%s binary %q not found: %s", req.Name, cmd, hint)
	}
	return nil
}
