package model

import "time"

// Entry represents a single recorded outcome for one test in a past run.
// Entries are immutable once written to the history file.
type Entry struct {
	// Whether the test passed in that run
	Passed bool `json:"passed"`
	// Duration of the test in milliseconds
	Duration float64 `json:"duration"`
	// Timestamp when the entry was recorded (end of the run)
	Timestamp time.Time `json:"timestamp"`
}

// History maps a test key to its recorded outcomes, ordered oldest to newest.
type History map[string][]Entry

// keySeparator joins the file and title components of a test key.
// Neither component is expected to contain it.
const keySeparator = "::"

// TestKey derives the stable identity for a test from its source file
// (relative to the project root) and its declared title. Two outcomes refer
// to the same test iff their keys are equal; the key does not depend on run
// order, retries, or timestamps.
//
// Returns "" when either component is missing, meaning the test cannot be
// tracked across runs.
func TestKey(file, title string) string {
	if file == "" || title == "" {
		return ""
	}
	return file + keySeparator + title
}
