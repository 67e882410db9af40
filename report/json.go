package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/smartreport/smartreport/model"
)

// JSON writes a machine-readable report alongside the HTML artifact, for CI
// pipelines that want to consume the signal data directly.
type JSON struct {
	path   string
	logger zerolog.Logger
}

// NewJSON creates a JSON renderer writing to path.
func NewJSON(path string, logger zerolog.Logger) *JSON {
	return &JSON{path: path, logger: logger}
}

// jsonReport is the top-level structure of the JSON artifact.
type jsonReport struct {
	Stats   model.RunStats    `json:"stats"`
	Results []model.RunResult `json:"results"`
}

// Render implements the aggregator's Renderer contract.
func (j *JSON) Render(results []model.RunResult, stats model.RunStats) error {
	data, err := json.MarshalIndent(jsonReport{Stats: stats, Results: results}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", j.path, err)
	}

	j.logger.Info().Str("path", j.path).Msg("JSON report written")
	return nil
}
