package whisper

import (
	"encoding/json"
	"strconv"
	"strings"

	"scribe/internal/subtitles"
)

// Normalize converts a raw transcription result into a non-empty ordered
// segment sequence. It is total: any input shape, including invalid JSON,
// yields at least one segment and never an error.
//
// A structured object with a usable list-valued "segments" field is returned
// verbatim. Anything else degrades to a single synthetic segment spanning
// [0, duration] and carrying the whole-output text, with duration coerced
// from a JSON number or numeric string (0 when absent or unparseable).
func Normalize(data []byte) []subtitles.Segment {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return []subtitles.Segment{{}}
	}

	if raw, ok := fields["segments"]; ok {
		var segments []subtitles.Segment
		if err := json.Unmarshal(raw, &segments); err == nil && len(segments) > 0 {
			return segments
		}
	}

	return []subtitles.Segment{{
		Start: 0,
		End:   coerceDuration(fields["duration"]),
		Text:  coerceText(fields["text"]),
	}}
}

func coerceDuration(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return parsed
		}
	}
	return 0
}

func coerceText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return ""
}
