// Package event decodes the line-delimited JSON event stream emitted by the
// host test engine.
package event

import "github.com/smartreport/smartreport/model"

// Type identifies a kind of engine event.
type Type string

const (
	TypeRunBegin     Type = "runBegin"
	TypeTestComplete Type = "testComplete"
	TypeRunEnd       Type = "runEnd"
)

// TestError is one error descriptor attached to a test completion.
type TestError struct {
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// RunBegin signals the start of a run.
type RunBegin struct {
	// Project root directory; test file paths are relative to it
	RootDir string `json:"rootDir,omitempty"`
	// Epoch milliseconds when the run started
	Timestamp int64 `json:"timestamp,omitempty"`
}

// TestComplete reports one finished test.
type TestComplete struct {
	// Test source file path relative to the project root
	File string `json:"file,omitempty"`
	// Declared test title
	Title    string       `json:"title,omitempty"`
	Status   model.Status `json:"status"`
	Duration float64      `json:"duration"`
	Retries  int          `json:"retries,omitempty"`
	Errors   []TestError  `json:"errors,omitempty"`
}

// RunEnd signals the end of a run.
type RunEnd struct {
	// Epoch milliseconds when the run ended
	Timestamp int64 `json:"timestamp,omitempty"`
}

// Event is one decoded line of the stream. Exactly one of the payload fields
// matching Type is populated.
type Event struct {
	Type  Type          `json:"type"`
	Begin *RunBegin     `json:"begin,omitempty"`
	Test  *TestComplete `json:"test,omitempty"`
	End   *RunEnd       `json:"end,omitempty"`
}
