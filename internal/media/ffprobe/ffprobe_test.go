package ffprobe

import (
	"context"
	"encoding/json"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "12.345000", "format_name": "mov,mp4,m4a"}
}`

func TestResultAccessors(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(samplePayload), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("AudioStreamCount = %d, want 1", got)
	}
	if got := result.DurationSeconds(); got != 12.345 {
		t.Fatalf("DurationSeconds = %v, want 12.345", got)
	}
}

func TestDurationSecondsMalformed(t *testing.T) {
	cases := []string{"", "abc", "-3"}
	for _, value := range cases {
		result := Result{Format: Format{Duration: value}}
		if got := result.DurationSeconds(); got != 0 {
			t.Fatalf("DurationSeconds(%q) = %v, want 0", value, got)
		}
	}
}

func TestInspectEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
