package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"scribe/internal/services"
	"scribe/internal/subtitles"
)

func TestTranscribeRunsWhisperAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(source, []byte("not real audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	svc := NewService(Config{Model: "base", Language: "English"}, "")
	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		payload := `{"segments": [{"start": 0, "end": 5, "text": " hello "}], "text": " hello "}`
		return os.WriteFile(filepath.Join(outDir, "audio.json"), []byte(payload), 0o644)
	})

	result, err := svc.Transcribe(context.Background(), source, outDir)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotName != WhisperCommand {
		t.Fatalf("command = %q, want %q", gotName, WhisperCommand)
	}
	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{source, "--model base", "--output_format json", "--output_dir " + outDir, "--language en"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args %q missing %q", joined, want)
		}
	}
	wantSegments := []subtitles.Segment{{Start: 0, End: 5, Text: " hello "}}
	if !reflect.DeepEqual(result.Segments, wantSegments) {
		t.Fatalf("segments = %+v, want %+v", result.Segments, wantSegments)
	}
	if result.JSONPath != filepath.Join(outDir, "audio.json") {
		t.Fatalf("json path = %q", result.JSONPath)
	}
}

func TestTranscribeModelFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(source, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(Config{Model: "definitely-not-a-model"}, "")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1: model not found")
	})

	_, err := svc.Transcribe(context.Background(), source, dir)
	if err == nil {
		t.Fatal("expected error from failing model")
	}
	if errors.Is(err, services.ErrExternalTool) {
		t.Fatal("model failures must stay unclassified, not map to the extraction exit code")
	}
}

func TestTranscribeMissingResultFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(source, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	svc := NewService(Config{}, "")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return nil // whisper "succeeds" but writes nothing
	})
	if _, err := svc.Transcribe(context.Background(), source, dir); err == nil {
		t.Fatal("expected error when result file is missing")
	}
}

func TestTranscribeNoLanguageFlagWhenUnset(t *testing.T) {
	svc := NewService(Config{Model: "small"}, "")
	args := svc.buildArgs("in.wav", "out")
	for _, arg := range args {
		if arg == "--language" {
			t.Fatal("unexpected --language flag without configured language")
		}
	}
}

func TestExtractAudioArgs(t *testing.T) {
	svc := NewService(Config{}, "ffmpeg-test")
	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})
	if err := svc.ExtractAudio(context.Background(), "movie.mkv", "audio.wav"); err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	if gotName != "ffmpeg-test" {
		t.Fatalf("command = %q", gotName)
	}
	want := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", "movie.mkv", "-ac", "1", "-ar", "16000", "-vn", "audio.wav"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
}

func TestExtractAudioFailureClassified(t *testing.T) {
	err := ExtractAudio(context.Background(), "false", "in.mkv", "out.wav")
	if err == nil {
		t.Skip("false binary unavailable")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool classification, got %v", err)
	}
}
