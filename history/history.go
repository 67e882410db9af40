// Package history persists the bounded per-test outcome history to a single
// JSON file. The file is human-readable and fully rewritten on each persist.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/smartreport/smartreport/model"
)

// Store reads and writes the durable test history at a fixed path, keeping at
// most maxRuns entries per test.
type Store struct {
	path    string
	maxRuns int
	logger  zerolog.Logger
}

// NewStore creates a store for the history file at path. maxRuns must be
// positive; it bounds how many entries are retained per test.
func NewStore(path string, maxRuns int, logger zerolog.Logger) *Store {
	return &Store{
		path:    path,
		maxRuns: maxRuns,
		logger:  logger,
	}
}

// Load reads the history file. A missing or unparsable file is treated as
// "no history yet": it yields an empty mapping and is never an error.
func (s *Store) Load() model.History {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read history file, starting fresh")
		}
		return model.History{}
	}

	var history model.History
	if err := json.Unmarshal(data, &history); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to parse history file, starting fresh")
		return model.History{}
	}
	if history == nil {
		history = model.History{}
	}
	return history
}

// Append returns a copy of history with entry appended to key's sequence,
// truncated from the front so at most maxRuns entries remain. The input
// history is not modified.
func (s *Store) Append(history model.History, key string, entry model.Entry) model.History {
	out := make(model.History, len(history))
	for k, v := range history {
		out[k] = v
	}

	seq := append(append([]model.Entry{}, history[key]...), entry)
	if len(seq) > s.maxRuns {
		seq = seq[len(seq)-s.maxRuns:]
	}
	out[key] = seq
	return out
}

// Persist writes the full mapping to the history file, replacing any prior
// content. The write goes through a temporary file in the same directory and
// is completed by rename, so a concurrent reader never observes a partial
// file. Call at most once per run, after all appends.
func (s *Store) Persist(history model.History) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary history file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close history file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace history file %s: %w", s.path, err)
	}
	return nil
}
