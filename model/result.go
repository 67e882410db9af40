package model

import "time"

// Status represents the outcome of a single test in the current run.
type Status string

const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusSkipped     Status = "skipped"
	StatusTimedOut    Status = "timedOut"
	StatusInterrupted Status = "interrupted"
)

// Flakiness classifies a test by the fraction of its recorded runs that failed.
type Flakiness string

const (
	// FlakinessNew means the test has no recorded history yet
	FlakinessNew Flakiness = "New"
	// FlakinessStable means fewer than 10% of recorded runs failed
	FlakinessStable Flakiness = "Stable"
	// FlakinessUnstable means 10% to under 30% of recorded runs failed
	FlakinessUnstable Flakiness = "Unstable"
	// FlakinessFlaky means 30% or more of recorded runs failed
	FlakinessFlaky Flakiness = "Flaky"
)

// Trend classifies the current duration against the historical average.
type Trend string

const (
	// TrendBaseline means the test has no recorded history to compare against
	TrendBaseline Trend = "Baseline"
	// TrendStable means the current duration is within the threshold band
	TrendStable Trend = "Stable"
	// TrendSlower means the current duration exceeds the average by more than the threshold
	TrendSlower Trend = "slower"
	// TrendFaster means the current duration undercuts the average by more than the threshold
	TrendFaster Trend = "faster"
)

// Signal carries the derived flakiness and performance classification for one
// test. It is computed fresh each run from the pre-run history snapshot and is
// never persisted itself.
type Signal struct {
	// Fraction of recorded runs that failed, in [0,1]; nil when no history exists
	FlakinessScore *float64 `json:"flakinessScore,omitempty"`
	Flakiness      Flakiness `json:"flakiness"`
	Trend          Trend     `json:"trend"`
	// Percentage change against the historical average, rounded; only
	// meaningful when Trend is slower or faster
	TrendPercent int `json:"trendPercent,omitempty"`
	// Mean duration of recorded runs in milliseconds; nil when no history exists
	AverageDuration *float64 `json:"averageDuration,omitempty"`
}

// RunResult represents one test's outcome for the current run, annotated with
// its derived signal and, for failures, an optional remediation suggestion.
type RunResult struct {
	// Stable test key (see TestKey); empty when the test had no usable
	// file or title, in which case no signal is computed and no history
	// is recorded for it
	Key      string  `json:"key,omitempty"`
	Title    string  `json:"title"`
	File     string  `json:"file,omitempty"`
	Status   Status  `json:"status"`
	Duration float64 `json:"duration"`
	Retries  int     `json:"retries,omitempty"`
	// First error message reported by the engine, if any
	Error string `json:"error,omitempty"`
	// Stack trace accompanying the error, if any
	Stack  string `json:"stack,omitempty"`
	Signal Signal `json:"signal"`
	// Remediation suggestion from the enrichment provider, if any
	Suggestion string `json:"suggestion,omitempty"`
}

// RunStats aggregates one run's results for the report header.
type RunStats struct {
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	TimedOut    int           `json:"timedOut"`
	Interrupted int           `json:"interrupted"`
	Flaky       int           `json:"flaky"`
	Slower      int           `json:"slower"`
	Duration    time.Duration `json:"duration"`
}

// Failed statuses are the ones eligible for enrichment.
func (s Status) IsFailure() bool {
	return s == StatusFailed || s == StatusTimedOut
}
