// Package aggregate collects one run's per-test results, annotates them with
// history-derived signals, and finalizes the run: enrichment, rendering and
// history persistence. One Aggregator instance covers exactly one run; it is
// constructed at run begin and discarded at run end.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartreport/smartreport/enrich"
	"github.com/smartreport/smartreport/event"
	"github.com/smartreport/smartreport/history"
	"github.com/smartreport/smartreport/model"
	"github.com/smartreport/smartreport/signal"
)

// state tracks the aggregator's progress through a run.
type state int

const (
	stateIdle state = iota
	stateCollecting
	stateDone
)

// Renderer produces the run's viewable artifacts.
type Renderer interface {
	Render(results []model.RunResult, stats model.RunStats) error
}

// Options configures an Aggregator.
type Options struct {
	Store    *history.Store
	Renderer Renderer
	// Provider may be nil, in which case enrichment is skipped
	Provider   enrich.Provider
	Thresholds signal.Thresholds
	// EnrichTimeout bounds each individual enrichment request
	EnrichTimeout time.Duration
	Logger        zerolog.Logger
}

// Aggregator owns the in-memory result sequence for the current run and the
// history snapshot loaded at run begin. The snapshot is never reloaded
// mid-run: every signal is computed against pre-run data, and this run's
// outcomes are appended to the same snapshot at run end.
type Aggregator struct {
	opts     Options
	state    state
	rootDir  string
	started  time.Time
	snapshot model.History
	results  []model.RunResult
}

// New creates an aggregator for a single run.
func New(opts Options) *Aggregator {
	return &Aggregator{opts: opts, state: stateIdle}
}

// BeginRun loads the history snapshot and moves the aggregator into the
// collecting state. startedAt is the run's wall-clock start.
func (a *Aggregator) BeginRun(rootDir string, startedAt time.Time) {
	if a.state != stateIdle {
		a.opts.Logger.Warn().Msg("BeginRun called twice, ignoring")
		return
	}
	a.state = stateCollecting
	a.rootDir = rootDir
	a.started = startedAt
	a.snapshot = a.opts.Store.Load()
	a.opts.Logger.Debug().
		Str("root", rootDir).
		Int("tracked_tests", len(a.snapshot)).
		Msg("History snapshot loaded")
}

// RecordTest builds the RunResult for one completion event, annotates it with
// the signal derived from the pre-run snapshot, and appends it in arrival
// order. Tests without a usable file or title are kept in the result sequence
// but carry no signal and no history identity.
func (a *Aggregator) RecordTest(tc event.TestComplete) {
	if a.state != stateCollecting {
		a.opts.Logger.Warn().Str("test", tc.Title).Msg("Test completion outside of a run, ignoring")
		return
	}

	result := model.RunResult{
		Key:      model.TestKey(tc.File, tc.Title),
		Title:    tc.Title,
		File:     tc.File,
		Status:   tc.Status,
		Duration: tc.Duration,
		Retries:  tc.Retries,
	}
	if len(tc.Errors) > 0 {
		result.Error = tc.Errors[0].Message
		result.Stack = tc.Errors[0].Stack
	}

	if result.Key != "" {
		result.Signal = signal.Compute(a.snapshot[result.Key], tc.Duration, a.opts.Thresholds)
	} else {
		a.opts.Logger.Debug().Str("title", tc.Title).Msg("Test has no stable identity, skipping signal")
	}

	a.results = append(a.results, result)
}

// FinishRun completes the run: failures are enriched, the report is rendered,
// and the run's outcomes are appended to the snapshot and persisted once.
// Rendering and persistence problems are returned as one combined error after
// best-effort completion of both; per-test enrichment failures are logged and
// never propagate.
func (a *Aggregator) FinishRun(ctx context.Context, endedAt time.Time) error {
	if a.state != stateCollecting {
		return fmt.Errorf("run finished without a matching begin")
	}
	a.state = stateDone

	a.enrichFailures(ctx)

	stats := a.stats(endedAt)
	var errs []error
	if err := a.opts.Renderer.Render(a.results, stats); err != nil {
		errs = append(errs, fmt.Errorf("failed to render report: %w", err))
	}

	updated := a.snapshot
	for _, r := range a.results {
		if r.Key == "" {
			continue
		}
		updated = a.opts.Store.Append(updated, r.Key, model.Entry{
			Passed:    r.Status == model.StatusPassed,
			Duration:  r.Duration,
			Timestamp: endedAt,
		})
	}
	if err := a.opts.Store.Persist(updated); err != nil {
		errs = append(errs, fmt.Errorf("failed to persist history: %w", err))
	}

	a.opts.Logger.Info().
		Int("tests", stats.Total).
		Int("failed", stats.Failed+stats.TimedOut).
		Int("flaky", stats.Flaky).
		Int("slower", stats.Slower).
		Msg("Run finalized")

	return errors.Join(errs...)
}

// Results returns the run's result sequence in arrival order.
func (a *Aggregator) Results() []model.RunResult {
	return a.results
}

// enrichFailures requests a suggestion for every failed or timed-out result,
// sequentially to keep output ordering deterministic. One test's enrichment
// failure never affects the others.
func (a *Aggregator) enrichFailures(ctx context.Context) {
	if a.opts.Provider == nil {
		for _, r := range a.results {
			if r.Status.IsFailure() {
				a.opts.Logger.Info().Msg("No enrichment credentials configured, skipping failure suggestions")
				return
			}
		}
		return
	}

	for i := range a.results {
		r := &a.results[i]
		if !r.Status.IsFailure() {
			continue
		}

		reqCtx, cancel := context.WithTimeout(ctx, a.opts.EnrichTimeout)
		suggestion, err := a.opts.Provider.Suggest(reqCtx, enrich.Request{
			Title:   r.Title,
			File:    r.File,
			Message: r.Error,
			Stack:   r.Stack,
		})
		cancel()
		if err != nil {
			a.opts.Logger.Warn().Err(err).Str("test", r.Title).Msg("Failed to fetch suggestion")
			continue
		}
		r.Suggestion = suggestion
	}
}

// stats computes the run-level aggregates handed to the renderer.
func (a *Aggregator) stats(endedAt time.Time) model.RunStats {
	stats := model.RunStats{Total: len(a.results)}
	if !a.started.IsZero() {
		stats.Duration = endedAt.Sub(a.started)
	}
	for _, r := range a.results {
		switch r.Status {
		case model.StatusPassed:
			stats.Passed++
		case model.StatusFailed:
			stats.Failed++
		case model.StatusSkipped:
			stats.Skipped++
		case model.StatusTimedOut:
			stats.TimedOut++
		case model.StatusInterrupted:
			stats.Interrupted++
		}
		if r.Signal.Flakiness == model.FlakinessFlaky {
			stats.Flaky++
		}
		if r.Signal.Trend == model.TrendSlower {
			stats.Slower++
		}
	}
	return stats
}
