package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	workDir    string
	cacheDir   string
	historyDB  string
	binDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "xdg-cache"))

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(homeDir, ".config", "scribe", "config.toml"),
		workDir:    filepath.Join(base, "work"),
		cacheDir:   filepath.Join(base, "cache"),
		historyDB:  filepath.Join(base, "history.db"),
		binDir:     filepath.Join(base, "bin"),
	}
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nwork_dir = %q\ncache_dir = %q\nhistory_path = %q\n",
		env.workDir,
		env.cacheDir,
		env.historyDB,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// stubBinaries installs shell-script stand-ins for ffmpeg, ffprobe, and
// whisper and puts them first on PATH. The ffmpeg stub writes its last
// argument (the destination WAV); the whisper stub writes a minimal JSON
// result into --output_dir.
func (env *cliTestEnv) stubBinaries(t *testing.T) {
	t.Helper()
	if err := os.MkdirAll(env.binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}

	writeStub(t, filepath.Join(env.binDir, "ffmpeg"), `#!/bin/sh
for last; do :; done
printf 'RIFF fake audio' > "$last"
`)
	writeStub(t, filepath.Join(env.binDir, "ffprobe"), `#!/bin/sh
printf '{"streams":[{"index":0,"codec_type":"audio","channels":2}],"format":{"duration":"20.0"}}'
`)
	writeStub(t, filepath.Join(env.binDir, "whisper"), `#!/bin/sh
src="$1"
out="."
while [ $# -gt 0 ]; do
  if [ "$1" = "--output_dir" ]; then out="$2"; fi
  shift
done
base=$(basename "$src" .wav)
printf '{"segments":[{"start":0,"end":5,"text":"hello"}],"text":"hello"}' > "$out/$base.json"
`)

	t.Setenv("PATH", env.binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func writeStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
