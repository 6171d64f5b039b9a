package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClear(t *testing.T) {
	env := setupCLITestEnv(t)

	if err := os.MkdirAll(env.cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"aa.json", "bb.json"} {
		if err := os.WriteFile(filepath.Join(env.cacheDir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 2 cached transcription(s)")

	entries, err := os.ReadDir(env.cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			t.Fatalf("cache entry %s survived clear", entry.Name())
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No transcription runs recorded yet")
}
