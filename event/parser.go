package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Parser reads an engine event stream line by line. Individual lines that
// cannot be decoded, and events of unknown type, are logged and skipped so a
// partially written stream still yields every usable outcome.
type Parser struct {
	logger zerolog.Logger
}

// New creates an event stream parser.
func New(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// maxLineSize bounds a single event line; stack traces can get long.
const maxLineSize = 4 * 1024 * 1024

// Parse decodes all events from r in stream order.
func (p *Parser) Parse(r io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var events []Event
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			p.logger.Warn().Err(err).Int("line", line).Msg("Skipping malformed event line")
			continue
		}

		switch ev.Type {
		case TypeRunBegin, TypeTestComplete, TypeRunEnd:
			events = append(events, ev)
		default:
			p.logger.Warn().Str("type", string(ev.Type)).Int("line", line).Msg("Skipping unknown event type")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event stream: %w", err)
	}
	return events, nil
}
