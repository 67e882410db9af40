// Package report renders the annotated run results into viewable artifacts.
// The HTML report is fully self-contained: styles and script are inlined so
// the file can be opened or archived on its own.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartreport/smartreport/model"
)

// HTML writes the interactive HTML report.
type HTML struct {
	path   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewHTML creates an HTML renderer writing to path.
func NewHTML(path string, logger zerolog.Logger) *HTML {
	return &HTML{path: path, logger: logger, now: time.Now}
}

// templateData is the root object handed to the report template.
type templateData struct {
	GeneratedAt string
	Stats       model.RunStats
	Results     []model.RunResult
}

// Render implements the aggregator's Renderer contract.
func (h *HTML) Render(results []model.RunResult, stats model.RunStats) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"ms":        formatMillis,
		"percent":   formatPercent,
		"trendCell": trendCell,
	}).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(h.path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", h.path, err)
	}
	defer f.Close()

	data := templateData{
		GeneratedAt: h.now().Format("2006-01-02 15:04:05"),
		Stats:       stats,
		Results:     results,
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	h.logger.Info().Str("path", h.path).Int("tests", len(results)).Msg("HTML report written")
	return nil
}

// formatMillis renders a millisecond duration compactly.
func formatMillis(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1f s", ms/1000)
	}
	return fmt.Sprintf("%.0f ms", ms)
}

// formatPercent renders a nil-able score as a percentage.
func formatPercent(score *float64) string {
	if score == nil {
		return "–"
	}
	return fmt.Sprintf("%.0f%%", *score*100)
}

// trendCell renders the trend with its magnitude, e.g. "slower (21%)".
func trendCell(sig model.Signal) string {
	switch sig.Trend {
	case model.TrendSlower, model.TrendFaster:
		return fmt.Sprintf("%s (%d%%)", sig.Trend, sig.TrendPercent)
	default:
		return string(sig.Trend)
	}
}
