package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// WorkDir hosts per-run temporary directories for extracted audio.
	WorkDir string `toml:"work_dir"`
	// CacheDir hosts cached transcription results.
	CacheDir string `toml:"cache_dir"`
	// HistoryPath is the location of the run-history database.
	HistoryPath string `toml:"history_path"`
}

// Whisper contains settings for the external recognition model.
type Whisper struct {
	// Model is the whisper model name (tiny, base, small, medium, large).
	Model string `toml:"model"`
	// Language optionally pins the transcription language.
	Language string `toml:"language"`
	// Binary overrides the whisper executable name.
	Binary string `toml:"binary"`
}

// Cache contains configuration for transcription result reuse.
type Cache struct {
	Enabled bool `toml:"enabled"`
}

// History contains configuration for the run-history store.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scribe.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Whisper Whisper `toml:"whisper"`
	Cache   Cache   `toml:"cache"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultModel is used when neither config nor flags select a model.
const DefaultModel = "small"

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:     "",
			CacheDir:    defaultCacheDir(),
			HistoryPath: filepath.Join(defaultCacheDir(), "history.db"),
		},
		Whisper: Whisper{
			Model:  DefaultModel,
			Binary: "whisper",
		},
		Cache:   Cache{Enabled: true},
		History: History{Enabled: true},
		Logging: Logging{Format: "console", Level: "info"},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply and exists reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.WorkDir = strings.TrimSpace(c.Paths.WorkDir); c.Paths.WorkDir != "" {
		if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
			return err
		}
	}
	if c.Paths.CacheDir = strings.TrimSpace(c.Paths.CacheDir); c.Paths.CacheDir == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return err
	}
	if c.Paths.HistoryPath = strings.TrimSpace(c.Paths.HistoryPath); c.Paths.HistoryPath == "" {
		c.Paths.HistoryPath = filepath.Join(c.Paths.CacheDir, "history.db")
	}
	if c.Paths.HistoryPath, err = expandPath(c.Paths.HistoryPath); err != nil {
		return err
	}

	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = DefaultModel
	}
	c.Whisper.Language = strings.TrimSpace(c.Whisper.Language)
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = "whisper"
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}

// Validate reports configuration values that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if strings.ContainsAny(c.Whisper.Model, " \t") {
		return fmt.Errorf("whisper.model: invalid value %q", c.Whisper.Model)
	}
	return nil
}

// EnsureDirectories creates directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.CacheDir, filepath.Dir(c.Paths.HistoryPath)}
	if c.Paths.WorkDir != "" {
		dirs = append(dirs, c.Paths.WorkDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "scribe")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "scribe-cache")
	}
	return filepath.Join(home, ".cache", "scribe")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
