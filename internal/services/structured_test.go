package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

var redFlagsVars = map[string]string{"resume_text": "ten jobs in two years"}

func TestStructuredClientInvoke(t *testing.T) {
	gen := newFakeGenerator(map[string]string{
		"RedFlags": `{"red_flags_found": true, "summary": "Frequent job changes."}`,
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	client := NewStructuredClient(gen, metrics, nil)

	var out models.RedFlags
	require.NoError(t, client.Invoke(context.Background(), RedFlagsSchema, redFlagsPrompt, redFlagsVars, &out))

	assert.True(t, out.RedFlagsFound)
	assert.Equal(t, "Frequent job changes.", out.Summary)

	calls := gen.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "RedFlags", calls[0].Operation)
	assert.Same(t, RedFlagsSchema, calls[0].Schema)
	assert.Contains(t, calls[0].System, "HR compliance AI")
	assert.Equal(t, "Resume Text: ten jobs in two years", calls[0].Prompt)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.llmRequests.WithLabelValues("RedFlags", "ok")))
}

func TestStructuredClientStripsMarkdownFences(t *testing.T) {
	gen := newFakeGenerator(map[string]string{
		"RedFlags": "```json\n{\"red_flags_found\": false, \"summary\": \"None.\"}\n```",
	})
	client := NewStructuredClient(gen, nil, nil)

	var out models.RedFlags
	require.NoError(t, client.Invoke(context.Background(), RedFlagsSchema, redFlagsPrompt, redFlagsVars, &out))
	assert.False(t, out.RedFlagsFound)
	assert.Equal(t, "None.", out.Summary)
}

func TestStructuredClientSchemaViolation(t *testing.T) {
	gen := newFakeGenerator(map[string]string{
		"RedFlags": `{"summary": "missing the boolean"}`,
	})
	metrics := NewMetrics(prometheus.NewRegistry())
	client := NewStructuredClient(gen, metrics, nil)

	var out models.RedFlags
	err := client.Invoke(context.Background(), RedFlagsSchema, redFlagsPrompt, redFlagsVars, &out)

	hasDetailFor(t, err, "red_flags_found")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.llmRequests.WithLabelValues("RedFlags", "invalid")))
}

func TestStructuredClientNonJSONReply(t *testing.T) {
	gen := newFakeGenerator(map[string]string{"RedFlags": "I cannot help with that."})
	client := NewStructuredClient(gen, nil, nil)

	var out models.RedFlags
	err := client.Invoke(context.Background(), RedFlagsSchema, redFlagsPrompt, redFlagsVars, &out)

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "invalid_json", schemaErr.Details[0].Type)
}

func TestStructuredClientProviderFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	gen := newFakeGenerator(nil)
	gen.err = cause
	client := NewStructuredClient(gen, nil, nil)

	var out models.RedFlags
	err := client.Invoke(context.Background(), RedFlagsSchema, redFlagsPrompt, redFlagsVars, &out)

	var llmErr *LLMInvocationError
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, "RedFlags", llmErr.Operation)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, gen.calls(), 1, "no retries")
}

func TestStructuredClientMissingVariableSkipsCall(t *testing.T) {
	gen := newFakeGenerator(nil)
	client := NewStructuredClient(gen, nil, nil)

	var out models.RedFlags
	err := client.Invoke(context.Background(), RedFlagsSchema, redFlagsPrompt, map[string]string{}, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume_text")
	assert.Empty(t, gen.calls())
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around", input: "Here you go: {\"a\":{\"b\":2}} hope it helps", want: `{"a":{"b":2}}`},
		{name: "no object", input: "  nothing here ", want: "nothing here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.input))
		})
	}
}
