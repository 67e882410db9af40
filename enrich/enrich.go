// Package enrich requests natural-language remediation hints for failing
// tests from an external text-generation provider. Two interchangeable
// backends are supported, selected by which API credential is present in the
// environment; with no credential the feature is skipped entirely.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Request carries the failure context sent to a provider.
type Request struct {
	Title   string
	File    string
	Message string
	Stack   string
}

// Provider returns a remediation suggestion for one failing test.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string
	// Suggest returns a short remediation hint for the failure.
	Suggest(ctx context.Context, req Request) (string, error)
}

// Environment variables holding provider credentials.
const (
	openAIKeyEnv    = "OPENAI_API_KEY"
	anthropicKeyEnv = "ANTHROPIC_API_KEY"
)

// FromEnv selects a provider from the environment. OpenAI wins when both
// credentials are present. Returns nil when neither is set; the caller is
// expected to skip enrichment in that case.
func FromEnv(logger zerolog.Logger) Provider {
	client := &http.Client{Timeout: 60 * time.Second}

	if key := os.Getenv(openAIKeyEnv); key != "" {
		return NewOpenAI(key, client, logger)
	}
	if key := os.Getenv(anthropicKeyEnv); key != "" {
		return NewAnthropic(key, client, logger)
	}
	return nil
}

// systemPrompt frames every suggestion request.
const systemPrompt = "You are a senior test engineer. Given a failing " +
	"automated test, explain the most likely cause and suggest a concrete " +
	"fix in at most three short sentences."

// buildPrompt renders the failure context for the provider. An absent stack
// trace is reported as "none available" rather than omitted.
func buildPrompt(req Request) string {
	stack := req.Stack
	if stack == "" {
		stack = "none available"
	}
	return fmt.Sprintf("Test: %s\nFile: %s\nError: %s\nStack trace: %s",
		req.Title, req.File, req.Message, stack)
}
