package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/media/ffprobe"
	"scribe/internal/services"
	"scribe/internal/services/whisper"
	"scribe/internal/subtitles"
	"scribe/internal/transcache"
)

// Request describes one transcription run.
type Request struct {
	// InputPath is the source video file.
	InputPath string
	// OutputPath receives the SRT document; empty derives it from InputPath
	// by replacing the extension with .srt.
	OutputPath string
	// Model overrides the configured whisper model.
	Model string
	// Language overrides the configured transcription language.
	Language string
	// WorkDir overrides the root for the per-run temporary directory.
	WorkDir string
}

// Result summarizes a completed run.
type Result struct {
	OutputPath   string
	Model        string
	Language     string
	SegmentCount int
	// MediaDuration is the container duration reported by ffprobe, when known.
	MediaDuration time.Duration
	CacheHit      bool
	// Issues lists post-write validation findings; the run still succeeds.
	Issues []string
}

// Service executes the extract, transcribe, and format stages in sequence.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *transcache.Cache
	store  *history.Store

	// Test seams; default to the real implementations.
	probe         func(deps.Requirement) error
	inspect       func(ctx context.Context, binary, path string) (ffprobe.Result, error)
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a pipeline service. The history store is optional; nil
// disables run recording.
func NewService(cfg *config.Config, logger *slog.Logger, store *history.Store) *Service {
	svc := &Service{
		cfg:     cfg,
		logger:  logging.WithComponent(logger, "pipeline"),
		store:   store,
		probe:   deps.Probe,
		inspect: ffprobe.Inspect,
	}
	if cfg.Cache.Enabled {
		svc.cache = transcache.New(cfg.Paths.CacheDir, logger)
	}
	return svc
}

// WithCommandRunner routes external process invocations through runner (for
// testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Run executes the full pipeline for one input file. The returned error is
// classified via the services sentinels: missing input maps to exit code 2,
// a failed ffmpeg invocation to exit code 3, everything else to 1.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	result, err := s.run(ctx, req)
	s.record(ctx, req, result, err)
	return result, err
}

func (s *Service) run(ctx context.Context, req Request) (Result, error) {
	var result Result

	input := strings.TrimSpace(req.InputPath)
	if input == "" {
		return result, services.Wrap(services.ErrValidation, "pipeline", "", "input file path is required", nil)
	}
	input, _ = filepath.Abs(input)

	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, services.Wrap(services.ErrNotFound, "pipeline", "", fmt.Sprintf("input file not found: %s", input), nil)
		}
		return result, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return result, services.Wrap(services.ErrValidation, "pipeline", "", fmt.Sprintf("input path %s is a directory", input), nil)
	}

	result.OutputPath = strings.TrimSpace(req.OutputPath)
	if result.OutputPath == "" {
		result.OutputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".srt"
	}

	whisperSvc := s.whisperFor(req)
	result.Model = whisperSvc.Model()
	result.Language = whisperSvc.Language()

	// Capability checks before the first external invocation so a missing
	// tool fails with install guidance instead of an exec error mid-run.
	requirements := deps.Requirements(s.cfg.FFmpegBinary(), s.cfg.FFprobeBinary(), whisperSvc.Binary())
	var ffprobeReq deps.Requirement
	for _, requirement := range requirements {
		if requirement.Optional {
			ffprobeReq = requirement
			continue
		}
		if err := s.probe(requirement); err != nil {
			return result, services.Wrap(services.ErrToolMissing, "pipeline", "", err.Error(), nil)
		}
	}

	var mediaSeconds float64
	if s.probe(ffprobeReq) == nil {
		probed, err := s.inspect(ctx, s.cfg.FFprobeBinary(), input)
		if err != nil {
			s.logger.Warn("media inspection failed", logging.Args(logging.Error(err))...)
		} else {
			mediaSeconds = probed.DurationSeconds()
			result.MediaDuration = time.Duration(mediaSeconds * float64(time.Second))
			if probed.AudioStreamCount() == 0 {
				s.logger.Warn("no audio streams detected in input",
					logging.Args(logging.String("input", input))...)
			}
		}
	}

	workRoot := strings.TrimSpace(req.WorkDir)
	if workRoot == "" {
		workRoot = s.cfg.Paths.WorkDir
	}
	if workRoot == "" {
		workRoot = os.TempDir()
	}
	workDir := filepath.Join(workRoot, "scribe-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return result, fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "audio.wav")
	s.logger.Info("extracting audio",
		logging.Args(logging.String("input", input), logging.String("wav", wavPath))...)
	if err := whisperSvc.ExtractAudio(ctx, input, wavPath); err != nil {
		return result, err
	}

	segments, cacheHit, err := s.transcribe(ctx, whisperSvc, wavPath, workDir)
	if err != nil {
		return result, err
	}
	result.CacheHit = cacheHit
	result.SegmentCount = len(segments)

	if err := subtitles.WriteFile(result.OutputPath, segments); err != nil {
		return result, err
	}

	result.Issues = subtitles.ValidateContent(result.OutputPath, mediaSeconds)
	for _, issue := range result.Issues {
		s.logger.Warn("subtitle validation issue",
			logging.Args(
				logging.String("issue", issue),
				logging.String("output", result.OutputPath),
				logging.String(logging.FieldErrorHint, "review the generated subtitle file"),
			)...)
	}

	s.logger.Info("subtitle generated",
		logging.Args(
			logging.String("output", result.OutputPath),
			logging.Int("segments", result.SegmentCount),
			logging.Bool("cache_hit", cacheHit),
		)...)
	return result, nil
}

// transcribe obtains the normalized segments for the waveform, consulting the
// transcript cache when enabled.
func (s *Service) transcribe(ctx context.Context, whisperSvc *whisper.Service, wavPath, workDir string) ([]subtitles.Segment, bool, error) {
	var key string
	if s.cache != nil {
		derived, err := s.cache.Key(wavPath, whisperSvc.Model(), whisperSvc.Language())
		if err != nil {
			s.logger.Warn("cache key derivation failed", logging.Args(logging.Error(err))...)
		} else {
			key = derived
		}
		if cached, ok := s.cache.Lookup(key); ok {
			segments, err := whisper.LoadSegments(cached)
			if err == nil {
				s.logger.Info("transcription cache hit", logging.Args(logging.String("key", key))...)
				return segments, true, nil
			}
			s.logger.Warn("cached result unreadable, re-transcribing", logging.Args(logging.Error(err))...)
		}
	}

	s.logger.Info("transcribing audio",
		logging.Args(logging.String("model", whisperSvc.Model()))...)
	transcribed, err := whisperSvc.Transcribe(ctx, wavPath, workDir)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil && key != "" {
		if err := s.cache.Store(key, transcribed.JSONPath); err != nil {
			s.logger.Warn("caching transcription failed", logging.Args(logging.Error(err))...)
		}
	}
	return transcribed.Segments, false, nil
}

func (s *Service) whisperFor(req Request) *whisper.Service {
	cfg := whisper.Config{
		Model:    strings.TrimSpace(req.Model),
		Language: strings.TrimSpace(req.Language),
		Binary:   s.cfg.Whisper.Binary,
	}
	if cfg.Model == "" {
		cfg.Model = s.cfg.Whisper.Model
	}
	if cfg.Language == "" {
		cfg.Language = s.cfg.Whisper.Language
	}
	svc := whisper.NewService(cfg, s.cfg.FFmpegBinary())
	if s.commandRunner != nil {
		svc.WithCommandRunner(s.commandRunner)
	}
	return svc
}

// record persists the run outcome. Missing-input failures are not recorded:
// that path must leave no side effects.
func (s *Service) record(ctx context.Context, req Request, result Result, runErr error) {
	if s.store == nil || !s.cfg.History.Enabled {
		return
	}
	if runErr != nil && errors.Is(runErr, services.ErrNotFound) {
		return
	}
	run := history.Run{
		SourcePath:      req.InputPath,
		OutputPath:      result.OutputPath,
		Model:           result.Model,
		Language:        result.Language,
		Segments:        result.SegmentCount,
		DurationSeconds: result.MediaDuration.Seconds(),
		Status:          history.StatusCompleted,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.Detail = runErr.Error()
	}
	if _, err := s.store.Record(ctx, run); err != nil {
		s.logger.Warn("recording run history failed", logging.Args(logging.Error(err))...)
	}
}
