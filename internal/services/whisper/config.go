package whisper

// Config captures runtime settings for whisper transcription.
type Config struct {
	// Model is the whisper model name (tiny, base, small, medium, large).
	// Unrecognized values pass through and fail inside the model loader.
	Model string
	// Language optionally pins the transcription language (ISO 639-1).
	Language string
	// Binary overrides the whisper executable name.
	Binary string
}

// Whisper configuration constants.
const (
	DefaultModel = "small"
	OutputFormat = "json"
)

// Command names for external tools.
const (
	WhisperCommand = "whisper"
	FFmpegCommand  = "ffmpeg"
)
