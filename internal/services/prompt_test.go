package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptTemplateSlots(t *testing.T) {
	tmpl := PromptTemplate{
		System: "Level {strictness_level}. Reward {positive_factors}.",
		Human:  "{job_description}\n{resume_text}\n{job_description}",
	}
	assert.Equal(t, []string{"job_description", "positive_factors", "resume_text", "strictness_level"}, tmpl.Slots())
}

func TestPromptTemplateRender(t *testing.T) {
	tmpl := PromptTemplate{System: "Estimate for {salary_market}.", Human: "JD: {job_description}"}

	system, human, err := tmpl.Render(map[string]string{
		"salary_market":   "India",
		"job_description": "Go developer",
		"unused":          "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Estimate for India.", system)
	assert.Equal(t, "JD: Go developer", human)
}

func TestPromptTemplateRenderMissingVariable(t *testing.T) {
	tmpl := PromptTemplate{System: "{a_slot}", Human: "{b_slot}"}

	_, _, err := tmpl.Render(map[string]string{"a_slot": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b_slot")
}

func TestPromptTemplateRenderDoesNotReexpandValues(t *testing.T) {
	tmpl := PromptTemplate{System: "", Human: "Resume: {resume_text}"}

	_, human, err := tmpl.Render(map[string]string{"resume_text": "I like {job_description} braces"})
	require.NoError(t, err)
	assert.Equal(t, "Resume: I like {job_description} braces", human)
}

func TestScoringPromptsRenderWithPlaceholders(t *testing.T) {
	system, _, err := resumeScorePrompt.Render(map[string]string{
		"strictness_level": "high",
		"positive_factors": OrPlaceholder("", NoPositiveFactors),
		"negative_factors": OrPlaceholder("  ", NoNegativeFactors),
		"job_description":  "jd",
		"resume_text":      "resume",
	})
	require.NoError(t, err)
	assert.Contains(t, system, "Strictness Level (high)")
	assert.Contains(t, system, NoPositiveFactors)
	assert.Contains(t, system, NoNegativeFactors)
}

func TestOrPlaceholder(t *testing.T) {
	assert.Equal(t, "placeholder", OrPlaceholder("", "placeholder"))
	assert.Equal(t, "placeholder", OrPlaceholder(" \t", "placeholder"))
	assert.Equal(t, "Go", OrPlaceholder("Go", "placeholder"))
}
