package transcache

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"lukechampine.com/blake3"

	"scribe/internal/fileutil"
	"scribe/internal/logging"
)

// Cache stores raw whisper JSON results keyed by audio content, model, and
// language so identical inputs skip the model invocation entirely.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// New creates a cache rooted at dir. The directory is created lazily on the
// first Store.
func New(dir string, logger *slog.Logger) *Cache {
	return &Cache{dir: dir, logger: logging.WithComponent(logger, "transcache")}
}

// Key derives the cache key for a waveform file transcribed with the given
// model and language: a BLAKE3 hash over the audio bytes and both settings.
func (c *Cache) Key(wavPath, model, language string) (string, error) {
	file, err := os.Open(wavPath)
	if err != nil {
		return "", fmt.Errorf("cache key: open audio: %w", err)
	}
	defer file.Close()

	hasher := blake3.New(32, nil)
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("cache key: hash audio: %w", err)
	}
	hasher.Write([]byte("\x00" + strings.TrimSpace(model) + "\x00" + strings.TrimSpace(language)))
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Lookup returns the cached result path for key and whether it exists with
// non-empty content.
func (c *Cache) Lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	path := filepath.Join(c.dir, key+".json")
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return path, true
}

// Store copies a whisper JSON result into the cache under key. Writes are
// serialized through a lock file so concurrent runs cannot interleave on the
// same entry.
func (c *Cache) Store(key, jsonPath string) error {
	if key == "" {
		return fmt.Errorf("cache store: empty key")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("cache store: ensure dir: %w", err)
	}

	lock := flock.New(filepath.Join(c.dir, ".lock"))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("cache store: acquire lock: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil && c.logger != nil {
			c.logger.Warn("cache lock release failed", logging.Args(logging.Error(err))...)
		}
	}()

	dest := filepath.Join(c.dir, key+".json")
	if err := fileutil.CopyFile(jsonPath, dest); err != nil {
		return fmt.Errorf("cache store: copy result: %w", err)
	}
	if c.logger != nil {
		c.logger.Debug("transcription result cached", logging.Args(logging.String("key", key))...)
	}
	return nil
}

// Clear removes every cached entry. The cache directory itself survives.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache clear: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("cache clear: remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
