package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/smartreport/smartreport/model"
)

func newTestStore(t *testing.T, maxRuns int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-history.json")
	return NewStore(path, maxRuns, zerolog.Nop()), path
}

func TestLoad_MissingFile(t *testing.T) {
	store, _ := newTestStore(t, 10)
	history := store.Load()
	require.NotNil(t, history)
	require.Empty(t, history)
}

func TestLoad_CorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not json{"},
		{name: "wrong shape", content: `[1, 2, 3]`},
		{name: "truncated", content: `{"a::b": [{"passed": tr`},
		{name: "empty file", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newTestStore(t, 10)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			history := store.Load()
			require.NotNil(t, history)
			require.Empty(t, history)
		})
	}
}

func TestLoad_NullDocument(t *testing.T) {
	store, path := newTestStore(t, 10)
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	history := store.Load()
	require.NotNil(t, history)
	require.Empty(t, history)
}

func TestAppend_RetentionBound(t *testing.T) {
	store, _ := newTestStore(t, 2)
	key := model.TestKey("suite.spec.ts", "adds numbers")

	a := model.Entry{Passed: true, Duration: 100}
	b := model.Entry{Passed: false, Duration: 200}
	c := model.Entry{Passed: true, Duration: 300}

	history := model.History{}
	history = store.Append(history, key, a)
	history = store.Append(history, key, b)
	history = store.Append(history, key, c)

	require.Len(t, history[key], 2)
	require.Equal(t, []model.Entry{b, c}, history[key])
}

func TestAppend_DoesNotMutateInput(t *testing.T) {
	store, _ := newTestStore(t, 10)
	key := model.TestKey("suite.spec.ts", "adds numbers")

	original := model.History{key: {{Passed: true, Duration: 100}}}
	updated := store.Append(original, key, model.Entry{Passed: false, Duration: 200})

	require.Len(t, original[key], 1)
	require.Len(t, updated[key], 2)
}

func TestAppend_SingleRunRetention(t *testing.T) {
	store, _ := newTestStore(t, 1)
	key := model.TestKey("a.spec.ts", "t")

	history := store.Append(model.History{}, key, model.Entry{Passed: true, Duration: 100})
	history = store.Append(history, key, model.Entry{Passed: false, Duration: 250})

	require.Len(t, history[key], 1)
	require.Equal(t, model.Entry{Passed: false, Duration: 250}, history[key][0])
}

func TestPersist_Roundtrip(t *testing.T) {
	store, path := newTestStore(t, 10)
	key := model.TestKey("suite.spec.ts", "adds numbers")
	stamp := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	history := model.History{
		key: {{Passed: true, Duration: 500, Timestamp: stamp}},
	}
	require.NoError(t, store.Persist(history))

	// Persisted content must be valid indented JSON on disk
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"passed": true`)

	loaded := store.Load()
	require.Equal(t, history, loaded)
}

func TestPersist_Overwrites(t *testing.T) {
	store, _ := newTestStore(t, 10)
	key := model.TestKey("a.spec.ts", "t")

	require.NoError(t, store.Persist(model.History{
		key:                              {{Passed: true, Duration: 1}},
		model.TestKey("b.spec.ts", "u"): {{Passed: false, Duration: 2}},
	}))
	require.NoError(t, store.Persist(model.History{key: {{Passed: true, Duration: 3}}}))

	loaded := store.Load()
	require.Len(t, loaded, 1)
	require.Equal(t, 3.0, loaded[key][0].Duration)
}

func TestPersist_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test-history.json")
	store := NewStore(path, 10, zerolog.Nop())

	require.NoError(t, store.Persist(model.History{}))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestPersist_UnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	// Use the directory itself as the target path; rename onto a directory fails
	store := NewStore(dir, 10, zerolog.Nop())
	require.Error(t, store.Persist(model.History{}))
}
