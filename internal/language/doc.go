// Package language normalizes language identifiers to the ISO 639-1 codes the
// whisper CLI accepts.
package language
