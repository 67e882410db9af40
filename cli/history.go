package cli

// This file contains the history command for listing stored per-test
// outcomes and their current classification.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/smartreport/smartreport/history"
	"github.com/smartreport/smartreport/model"
	"github.com/smartreport/smartreport/signal"
)

func (a *App) history(ctx *cli.Context) error {
	filter := ctx.String("test")
	limit := ctx.Int("limit")

	cfg, err := a.resolveConfig(ctx)
	if err != nil {
		return err
	}

	store := history.NewStore(cfg.HistoryFile, cfg.MaxHistoryRuns, a.logger)
	stored := store.Load()
	if len(stored) == 0 {
		fmt.Println("No test history found")
		fmt.Printf("History is saved to %s after each reported run\n", cfg.HistoryFile)
		return nil
	}

	keys := make([]string, 0, len(stored))
	for key := range stored {
		if filter == "" || strings.Contains(key, filter) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		fmt.Printf("No test history found matching: %s\n", filter)
		return nil
	}
	sort.Strings(keys)

	displayKeys := keys
	if limit > 0 && limit < len(displayKeys) {
		displayKeys = displayKeys[:limit]
	}

	fmt.Printf("\n=== Test History (%d tests) ===\n\n", len(keys))

	for _, key := range displayKeys {
		entries := stored[key]
		if len(entries) == 0 {
			continue
		}
		flakiness, score := signal.Classify(entries)

		passes := 0
		var total float64
		for _, e := range entries {
			if e.Passed {
				passes++
			}
			total += e.Duration
		}
		avg := total / float64(len(entries))

		glyph := "✓"
		if flakiness == model.FlakinessFlaky {
			glyph = "✗"
		}

		fmt.Printf("%s  %s\n", glyph, key)
		fmt.Printf("   Runs: %d  Passed: %d  Avg: %.0f ms  Classification: %s", len(entries), passes, avg, flakiness)
		if score != nil {
			fmt.Printf(" (%.0f%% failing)", *score*100)
		}
		fmt.Println()

		last := entries[len(entries)-1]
		outcome := "passed"
		if !last.Passed {
			outcome = "failed"
		}
		fmt.Printf("   Last run: %s (%s)\n", last.Timestamp.Format("2006-01-02 15:04:05"), outcome)
		fmt.Println()
	}

	if len(displayKeys) < len(keys) {
		fmt.Printf("(%d more, use --limit to see them)\n", len(keys)-len(displayKeys))
	}

	return nil
}
