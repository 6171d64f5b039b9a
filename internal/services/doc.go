// Package services defines the shared error taxonomy for pipeline stages and
// the mapping from classified failures to CLI exit codes.
package services
