package event

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/smartreport/smartreport/model"
)

func TestParser_Parse(t *testing.T) {
	stream := `{"type":"runBegin","begin":{"rootDir":"/proj","timestamp":1700000000000}}
{"type":"testComplete","test":{"file":"login.spec.ts","title":"logs in","status":"passed","duration":412.5}}
{"type":"testComplete","test":{"file":"login.spec.ts","title":"rejects bad password","status":"failed","duration":903,"retries":2,"errors":[{"message":"expected 401","stack":"at login.spec.ts:42"}]}}
{"type":"runEnd","end":{"timestamp":1700000002000}}
`

	parser := New(zerolog.Nop())
	events, err := parser.Parse(strings.NewReader(stream))
	require.NoError(t, err)
	require.Len(t, events, 4)

	require.Equal(t, TypeRunBegin, events[0].Type)
	require.NotNil(t, events[0].Begin)
	require.Equal(t, "/proj", events[0].Begin.RootDir)

	require.Equal(t, TypeTestComplete, events[1].Type)
	require.NotNil(t, events[1].Test)
	require.Equal(t, "logs in", events[1].Test.Title)
	require.Equal(t, model.StatusPassed, events[1].Test.Status)
	require.Equal(t, 412.5, events[1].Test.Duration)

	require.Equal(t, 2, events[2].Test.Retries)
	require.Len(t, events[2].Test.Errors, 1)
	require.Equal(t, "expected 401", events[2].Test.Errors[0].Message)
	require.Equal(t, "at login.spec.ts:42", events[2].Test.Errors[0].Stack)

	require.Equal(t, TypeRunEnd, events[3].Type)
	require.NotNil(t, events[3].End)
}

func TestParser_ParseEmpty(t *testing.T) {
	parser := New(zerolog.Nop())
	events, err := parser.Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestParser_SkipsBadLines(t *testing.T) {
	stream := `{"type":"runBegin","begin":{}}
not json at all
{"type":"somethingElse"}

{"type":"testComplete","test":{"file":"a.spec.ts","title":"t","status":"passed","duration":10}}
{"type":"runEnd","end":{}}
`

	parser := New(zerolog.Nop())
	events, err := parser.Parse(strings.NewReader(stream))
	require.NoError(t, err)

	// Malformed line, unknown type and blank line are dropped
	require.Len(t, events, 3)
	require.Equal(t, TypeRunBegin, events[0].Type)
	require.Equal(t, TypeTestComplete, events[1].Type)
	require.Equal(t, TypeRunEnd, events[2].Type)
}
