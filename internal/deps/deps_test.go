package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary", InstallHint: "install it"},
		{Name: "Unset", Command: ""},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %q", results[2].Detail)
	}
}

func TestRequirementsCoverPipelineTools(t *testing.T) {
	reqs := Requirements("ffmpeg", "ffprobe", "whisper")
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	for _, req := range reqs {
		if req.InstallHint == "" {
			t.Fatalf("requirement %s lacks install hint", req.Name)
		}
	}
	if reqs[0].Optional || reqs[2].Optional {
		t.Fatal("ffmpeg and whisper must be mandatory")
	}
	if !reqs[1].Optional {
		t.Fatal("ffprobe should be optional")
	}
}

func TestProbe(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "ffmpeg")

	if err := Probe(Requirement{Name: "FFmpeg", Command: present}); err != nil {
		t.Fatalf("Probe on existing binary: %v", err)
	}

	err := Probe(Requirement{Name: "Whisper", Command: "definitely-absent", InstallHint: "pip install -U openai-whisper"})
	if err == nil {
		t.Fatal("expected error for absent binary")
	}
	if !strings.Contains(err.Error(), "pip install") {
		t.Fatalf("expected install hint in error, got %v", err)
	}
}
