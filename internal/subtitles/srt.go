package subtitles

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// FormatTimestamp renders seconds as an SRT timestamp: HH:MM:SS,mmm.
// Hours are unbounded rather than wrapped at 24. The value is rounded to the
// nearest millisecond, ties away from zero.
func FormatTimestamp(seconds float64) string {
	millis := int64(math.Round(seconds * 1000))
	if millis < 0 {
		millis = 0
	}
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	secs := millis / 1000
	millis -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Render converts an ordered segment sequence into SRT markup. Each segment
// becomes a numbered block (1-based) with a timestamp range line and trimmed
// text, terminated by a blank line. Order is preserved; nothing is merged,
// deduplicated, or reordered.
func Render(segments []Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(FormatTimestamp(seg.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(seg.End))
		b.WriteByte('\n')
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteFile renders segments and writes the SRT document as UTF-8.
func WriteFile(path string, segments []Segment) error {
	if err := os.WriteFile(path, []byte(Render(segments)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// CountCues returns the number of non-empty cue blocks in an SRT file.
func CountCues(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read srt: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, nil
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count, nil
}

// Bounds returns the first start and last end timestamp found in an SRT file,
// in seconds. Lines that do not parse are skipped.
func Bounds(path string) (float64, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read srt: %w", err)
	}
	first := math.Inf(1)
	var last float64
	found := false
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		if start, err := ParseTimestamp(parts[0]); err == nil {
			if start < first {
				first = start
			}
			found = true
		}
		if end, err := ParseTimestamp(parts[1]); err == nil && end > last {
			last = end
		}
	}
	if !found {
		return 0, last, nil
	}
	return first, last, nil
}

// ParseTimestamp converts an SRT timestamp back to seconds. A period is
// accepted in place of the standard comma millisecond separator.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// ValidateContent checks a written SRT file for format issues. Returns a list
// of issues found; empty means validation passed. videoSeconds of 0 skips the
// duration alignment check.
func ValidateContent(path string, videoSeconds float64) []string {
	var issues []string

	cues, err := CountCues(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("read_error: %v", err))
		return issues
	}
	if cues == 0 {
		issues = append(issues, "empty_subtitle_file")
		return issues
	}

	first, last, err := Bounds(path)
	if err != nil {
		issues = append(issues, fmt.Sprintf("timestamp_parse_error: %v", err))
	} else if first == 0 && last == 0 {
		issues = append(issues, "no_valid_timestamps")
	}

	if videoSeconds > 0 && last > videoSeconds+durationSlackSeconds {
		issues = append(issues, fmt.Sprintf("duration_mismatch: subtitle ends %.1fs after video", last-videoSeconds))
	}

	return issues
}

// durationSlackSeconds tolerates model timestamps that slightly overshoot the
// container duration.
const durationSlackSeconds = 2.0
