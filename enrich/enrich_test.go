package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Selection(t *testing.T) {
	tests := []struct {
		name         string
		openAIKey    string
		anthropicKey string
		wantProvider string
	}{
		{name: "neither set", wantProvider: ""},
		{name: "openai only", openAIKey: "sk-test", wantProvider: "openai"},
		{name: "anthropic only", anthropicKey: "sk-ant-test", wantProvider: "anthropic"},
		{name: "both set prefers openai", openAIKey: "sk-test", anthropicKey: "sk-ant-test", wantProvider: "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(openAIKeyEnv, tt.openAIKey)
			t.Setenv(anthropicKeyEnv, tt.anthropicKey)

			provider := FromEnv(zerolog.Nop())
			if tt.wantProvider == "" {
				require.Nil(t, provider)
				return
			}
			require.NotNil(t, provider)
			require.Equal(t, tt.wantProvider, provider.Name())
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Request{
		Title:   "logs in",
		File:    "login.spec.ts",
		Message: "expected 200, got 500",
		Stack:   "at login.spec.ts:42",
	})
	require.Contains(t, prompt, "Test: logs in")
	require.Contains(t, prompt, "File: login.spec.ts")
	require.Contains(t, prompt, "Error: expected 200, got 500")
	require.Contains(t, prompt, "Stack trace: at login.spec.ts:42")
}

func TestBuildPrompt_NoStack(t *testing.T) {
	prompt := buildPrompt(Request{Title: "t", File: "f", Message: "boom"})
	require.Contains(t, prompt, "Stack trace: none available")
}

func TestOpenAI_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, openAIModel, req.Model)
		require.Len(t, req.Messages, 2)
		require.Contains(t, req.Messages[1].Content, "Test: logs in")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Increase the login timeout.  "}},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenAI("sk-test", server.Client(), zerolog.Nop())
	provider.baseURL = server.URL

	got, err := provider.Suggest(context.Background(), Request{Title: "logs in", File: "login.spec.ts", Message: "timeout"})
	require.NoError(t, err)
	require.Equal(t, "Increase the login timeout.", got)
}

func TestOpenAI_SuggestErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{{{`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewOpenAI("sk-test", server.Client(), zerolog.Nop())
			provider.baseURL = server.URL

			_, err := provider.Suggest(context.Background(), Request{Title: "t"})
			require.Error(t, err)
		})
	}
}

func TestAnthropic_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/messages", r.URL.Path)
		require.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		require.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, anthropicModel, req.Model)
		require.NotEmpty(t, req.System)
		require.Len(t, req.Messages, 1)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Stub the network call."},
			},
		})
	}))
	defer server.Close()

	provider := NewAnthropic("sk-ant-test", server.Client(), zerolog.Nop())
	provider.baseURL = server.URL

	got, err := provider.Suggest(context.Background(), Request{Title: "fetches data", Message: "ECONNREFUSED"})
	require.NoError(t, err)
	require.Equal(t, "Stub the network call.", got)
}

func TestAnthropic_SuggestNoText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	provider := NewAnthropic("sk-ant-test", server.Client(), zerolog.Nop())
	provider.baseURL = server.URL

	_, err := provider.Suggest(context.Background(), Request{Title: "t"})
	require.Error(t, err)
}

func TestSuggest_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	provider := NewOpenAI("sk-test", server.Client(), zerolog.Nop())
	provider.baseURL = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Suggest(ctx, Request{Title: "t"})
	require.Error(t, err)
}
