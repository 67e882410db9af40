package cli

// This file contains the shared event stream processing pipeline used by the
// run and ingest commands.

import (
	"context"
	"io"
	"time"

	"github.com/smartreport/smartreport/aggregate"
	"github.com/smartreport/smartreport/config"
	"github.com/smartreport/smartreport/enrich"
	"github.com/smartreport/smartreport/event"
	"github.com/smartreport/smartreport/history"
	"github.com/smartreport/smartreport/report"
	"github.com/smartreport/smartreport/signal"
)

// processStream runs the full pipeline on one event stream: parse, aggregate,
// enrich, render, persist. The stream is taken as-is; a missing runBegin or
// runEnd is tolerated so a crashed engine still produces a report from
// whatever it managed to emit.
func (a *App) processStream(ctx context.Context, cfg config.Config, r io.Reader) error {
	events, err := event.New(a.logger).Parse(r)
	if err != nil {
		return err
	}

	provider := enrich.FromEnv(a.logger)
	if provider != nil {
		a.logger.Debug().Str("provider", provider.Name()).Msg("Enrichment provider configured")
	}

	renderer := report.Renderer(report.NewHTML(cfg.OutputFile, a.logger))
	if cfg.JSONReportFile != "" {
		renderer = report.Multi(renderer, report.NewJSON(cfg.JSONReportFile, a.logger))
	}

	agg := aggregate.New(aggregate.Options{
		Store:         history.NewStore(cfg.HistoryFile, cfg.MaxHistoryRuns, a.logger),
		Renderer:      renderer,
		Provider:      provider,
		Thresholds:    signal.Thresholds{Performance: cfg.PerformanceThreshold},
		EnrichTimeout: cfg.EnrichTimeout,
		Logger:        a.logger,
	})

	begun := false
	finished := false
	for _, ev := range events {
		switch ev.Type {
		case event.TypeRunBegin:
			begin := event.RunBegin{}
			if ev.Begin != nil {
				begin = *ev.Begin
			}
			agg.BeginRun(begin.RootDir, fromEpochMillis(begin.Timestamp))
			begun = true
		case event.TypeTestComplete:
			if ev.Test == nil {
				continue
			}
			if !begun {
				// Stream starts mid-run; begin with what we have
				agg.BeginRun("", time.Time{})
				begun = true
			}
			agg.RecordTest(*ev.Test)
		case event.TypeRunEnd:
			if !begun || finished {
				continue
			}
			endedAt := time.Now()
			if ev.End != nil && ev.End.Timestamp != 0 {
				endedAt = fromEpochMillis(ev.End.Timestamp)
			}
			if err := agg.FinishRun(ctx, endedAt); err != nil {
				return err
			}
			finished = true
		}
	}

	if !begun {
		a.logger.Info().Msg("Event stream contained no test results")
		return nil
	}
	if !finished {
		a.logger.Warn().Msg("Event stream ended without a run-end event, finalizing anyway")
		return agg.FinishRun(ctx, time.Now())
	}
	return nil
}

func fromEpochMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
