package transcache

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestKeyDependsOnContentModelAndLanguage(t *testing.T) {
	dir := t.TempDir()
	wavA := filepath.Join(dir, "a.wav")
	wavB := filepath.Join(dir, "b.wav")
	writeFile(t, wavA, "audio-a")
	writeFile(t, wavB, "audio-b")

	cache := New(filepath.Join(dir, "cache"), nil)

	keyA1, err := cache.Key(wavA, "small", "en")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	keyA2, err := cache.Key(wavA, "small", "en")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if keyA1 != keyA2 {
		t.Fatal("key must be deterministic")
	}

	keyB, _ := cache.Key(wavB, "small", "en")
	if keyB == keyA1 {
		t.Fatal("different audio must yield different keys")
	}
	keyModel, _ := cache.Key(wavA, "large", "en")
	if keyModel == keyA1 {
		t.Fatal("different model must yield different keys")
	}
	keyLang, _ := cache.Key(wavA, "small", "de")
	if keyLang == keyA1 {
		t.Fatal("different language must yield different keys")
	}
}

func TestStoreAndLookup(t *testing.T) {
	dir := t.TempDir()
	result := filepath.Join(dir, "result.json")
	writeFile(t, result, `{"segments": []}`)

	cache := New(filepath.Join(dir, "cache"), nil)
	if _, ok := cache.Lookup("deadbeef"); ok {
		t.Fatal("lookup should miss before store")
	}
	if err := cache.Store("deadbeef", result); err != nil {
		t.Fatalf("Store: %v", err)
	}
	path, ok := cache.Lookup("deadbeef")
	if !ok {
		t.Fatal("lookup should hit after store")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"segments": []}` {
		t.Fatalf("cached content = %q", data)
	}
}

func TestLookupRejectsEmptyEntry(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(cacheDir, "empty.json"), "")

	cache := New(cacheDir, nil)
	if _, ok := cache.Lookup("empty"); ok {
		t.Fatal("empty cache entries must be treated as misses")
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	result := filepath.Join(dir, "result.json")
	writeFile(t, result, `{}`)

	cache := New(filepath.Join(dir, "cache"), nil)
	for _, key := range []string{"one", "two"} {
		if err := cache.Store(key, result); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}
	removed, err := cache.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, ok := cache.Lookup("one"); ok {
		t.Fatal("entries should be gone after clear")
	}
}

func TestClearMissingDir(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "never-created"), nil)
	removed, err := cache.Clear()
	if err != nil || removed != 0 {
		t.Fatalf("Clear on missing dir = (%d, %v), want (0, nil)", removed, err)
	}
}
