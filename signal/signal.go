// Package signal derives flakiness and performance-trend classifications for
// a test from its recorded history. All functions are pure: identical inputs
// always produce identical outputs.
package signal

import (
	"math"

	"github.com/smartreport/smartreport/model"
)

// Flakiness band boundaries; each band is inclusive on its lower bound.
const (
	unstableMin = 0.1
	flakyMin    = 0.3
)

// Thresholds control trend classification.
type Thresholds struct {
	// Performance is the fraction of the historical average a duration must
	// deviate by before it is classified slower or faster.
	Performance float64
}

// Compute derives the full signal for a test given its pre-run history and
// the current run's duration in milliseconds.
func Compute(prior []model.Entry, currentDuration float64, t Thresholds) model.Signal {
	sig := model.Signal{}
	sig.Flakiness, sig.FlakinessScore = Classify(prior)
	sig.Trend, sig.TrendPercent, sig.AverageDuration = ClassifyTrend(prior, currentDuration, t.Performance)
	return sig
}

// Classify returns the flakiness indicator and score for the given history.
// With no history the test is New and has no score; otherwise the score is
// the exact fraction of entries that failed.
func Classify(prior []model.Entry) (model.Flakiness, *float64) {
	if len(prior) == 0 {
		return model.FlakinessNew, nil
	}

	failures := 0
	for _, e := range prior {
		if !e.Passed {
			failures++
		}
	}
	score := float64(failures) / float64(len(prior))

	switch {
	case score >= flakyMin:
		return model.FlakinessFlaky, &score
	case score >= unstableMin:
		return model.FlakinessUnstable, &score
	default:
		return model.FlakinessStable, &score
	}
}

// ClassifyTrend compares the current duration against the historical average.
// With no history the trend is Baseline and there is no average. A zero
// historical average is classified Stable, since no meaningful relative
// change can be computed.
func ClassifyTrend(prior []model.Entry, currentDuration, threshold float64) (model.Trend, int, *float64) {
	if len(prior) == 0 {
		return model.TrendBaseline, 0, nil
	}

	var total float64
	for _, e := range prior {
		total += e.Duration
	}
	avg := total / float64(len(prior))

	if avg == 0 {
		return model.TrendStable, 0, &avg
	}

	diff := (currentDuration - avg) / avg
	switch {
	case diff > threshold:
		return model.TrendSlower, int(math.Round(diff * 100)), &avg
	case diff < -threshold:
		return model.TrendFaster, int(math.Round(-diff * 100)), &avg
	default:
		return model.TrendStable, 0, &avg
	}
}
