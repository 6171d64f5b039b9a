package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "scribe/internal/language"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

// Service provides transcription via the external whisper CLI.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper service with the given configuration.
func NewService(cfg Config, ffmpegBinary string) *Service {
	if cfg.Binary == "" {
		cfg.Binary = WhisperCommand
	}
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Service{cfg: cfg, ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Binary returns the whisper executable name.
func (s *Service) Binary() string {
	return s.cfg.Binary
}

// Language returns the configured language normalized to ISO 639-1, or empty.
func (s *Service) Language() string {
	return langpkg.ToISO2(s.cfg.Language)
}

// ExtractAudio extracts the audio track from a source file into a mono 16kHz
// WAV at dest, using the service's command runner when configured.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	if s.commandRunner != nil {
		if err := s.commandRunner(ctx, s.ffmpegBinary, buildFFmpegExtractArgs(source, dest)...); err != nil {
			return services.Wrap(services.ErrExternalTool, "extract", "ffmpeg", err.Error(), err)
		}
		return nil
	}
	return ExtractAudio(ctx, s.ffmpegBinary, source, dest)
}

// Result contains the outcome of a transcription.
type Result struct {
	// Segments is the normalized, never-empty segment sequence.
	Segments []subtitles.Segment
	// JSONPath is the raw model output file consumed for normalization.
	JSONPath string
}

// Transcribe runs the whisper CLI on a WAV file and normalizes its JSON
// output. outputDir receives the model's result files; it defaults to the
// source directory. Model load or inference failure is fatal and returned
// unclassified.
func (s *Service) Transcribe(ctx context.Context, source, outputDir string) (Result, error) {
	var result Result

	if source == "" {
		return result, fmt.Errorf("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(source, outputDir)
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return result, fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result.JSONPath = filepath.Join(outputDir, baseName+".json")

	segments, err := LoadSegments(result.JSONPath)
	if err != nil {
		return result, err
	}
	result.Segments = segments
	return result, nil
}

// LoadSegments reads a whisper JSON result file and normalizes it into a
// non-empty segment sequence.
func LoadSegments(jsonPath string) ([]subtitles.Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper result: %w", err)
	}
	return Normalize(data), nil
}

// buildArgs constructs the whisper CLI arguments.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := []string{
		source,
		"--model", s.Model(),
		"--output_format", OutputFormat,
		"--output_dir", outputDir,
	}
	if lang := s.Language(); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
