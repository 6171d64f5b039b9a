package subtitles

// Segment is a single timed span of recognized speech. Ordering within a
// transcript is chronological and meaningful; a segment has no identity
// beyond its position.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
