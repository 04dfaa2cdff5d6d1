package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const validScoreReply = `{
  "name": "Jane Doe",
  "technical_score": 8,
  "technical_reason": "Strong Go background.",
  "softskills_score": 6,
  "softskills_reason": "Clear communicator.",
  "experience_and_alignment_score": 7,
  "experience_and_alignment_reason": "Five years in backend roles.",
  "positive_highlights": null,
  "negative_highlights": null,
  "aggregate_score": 7.3
}`

func hasDetailFor(t *testing.T, err error, field string) {
	t.Helper()

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	require.NotEmpty(t, schemaErr.Details)

	for _, d := range schemaErr.Details {
		if strings.Contains(d.Field+" "+d.Message, field) {
			return
		}
	}
	t.Fatalf("no validation detail mentions %q: %+v", field, schemaErr.Details)
}

func TestSchemaValidateAcceptsConformingReply(t *testing.T) {
	assert.NoError(t, ResumeScoreSchema.Validate([]byte(validScoreReply)))
}

func TestSchemaValidateOptionalFieldsMayBeAbsent(t *testing.T) {
	reply := `{
	  "name": "Jane Doe",
	  "technical_score": 8,
	  "technical_reason": "r",
	  "softskills_score": 6,
	  "softskills_reason": "r",
	  "experience_and_alignment_score": 7,
	  "experience_and_alignment_reason": "r"
	}`
	assert.NoError(t, ResumeScoreSchema.Validate([]byte(reply)))
}

func TestSchemaValidateMissingField(t *testing.T) {
	reply := strings.Replace(validScoreReply, `"technical_score": 8,`, "", 1)
	hasDetailFor(t, ResumeScoreSchema.Validate([]byte(reply)), "technical_score")
}

func TestSchemaValidateWrongType(t *testing.T) {
	reply := strings.Replace(validScoreReply, `"technical_score": 8`, `"technical_score": "eight"`, 1)
	hasDetailFor(t, ResumeScoreSchema.Validate([]byte(reply)), "technical_score")
}

func TestSchemaValidateMalformedJSON(t *testing.T) {
	err := RedFlagsSchema.Validate([]byte(`{"red_flags_found": tru`))

	var schemaErr *SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	require.Len(t, schemaErr.Details, 1)
	assert.Equal(t, "(root)", schemaErr.Details[0].Field)
	assert.Equal(t, "invalid_json", schemaErr.Details[0].Type)
	assert.Equal(t, "RedFlags", schemaErr.Schema)
}

func TestSchemaValidateDoesNotEnforceBounds(t *testing.T) {
	reply := strings.Replace(validScoreReply, `"technical_score": 8`, `"technical_score": 14`, 1)
	assert.NoError(t, ResumeScoreSchema.Validate([]byte(reply)))
}

func TestSchemaValidateNestedArray(t *testing.T) {
	ok := `{"recommendations": [{"name": "A", "score": 9.5, "reason": "r"}]}`
	assert.NoError(t, RecommendationListSchema.Validate([]byte(ok)))

	bad := `{"recommendations": [{"name": "A", "reason": "r"}]}`
	hasDetailFor(t, RecommendationListSchema.Validate([]byte(bad)), "score")
}

func TestGenaiSchema(t *testing.T) {
	s := ResumeScoreSchema.GenaiSchema()

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "ResumeScore", s.Title)
	require.Len(t, s.PropertyOrdering, len(ResumeScoreSchema.Fields))
	assert.Equal(t, "name", s.PropertyOrdering[0])
	assert.Equal(t, "aggregate_score", s.PropertyOrdering[len(s.PropertyOrdering)-1])

	assert.Contains(t, s.Required, "technical_score")
	assert.NotContains(t, s.Required, "positive_highlights")
	assert.NotContains(t, s.Required, "aggregate_score")

	technical := s.Properties["technical_score"]
	require.NotNil(t, technical)
	assert.Equal(t, genai.TypeInteger, technical.Type)
	require.NotNil(t, technical.Minimum)
	require.NotNil(t, technical.Maximum)
	assert.Equal(t, 0.0, *technical.Minimum)
	assert.Equal(t, 10.0, *technical.Maximum)
	assert.NotEmpty(t, technical.Description)

	highlights := s.Properties["positive_highlights"]
	require.NotNil(t, highlights.Nullable)
	assert.True(t, *highlights.Nullable)
}

func TestGenaiSchemaNestedItems(t *testing.T) {
	s := RecommendationListSchema.GenaiSchema()

	recs := s.Properties["recommendations"]
	require.NotNil(t, recs)
	assert.Equal(t, genai.TypeArray, recs.Type)
	require.NotNil(t, recs.Items)
	assert.Equal(t, genai.TypeObject, recs.Items.Type)
	assert.ElementsMatch(t, []string{"name", "score", "reason"}, recs.Items.Required)
}
