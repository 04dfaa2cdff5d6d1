package services

import (
	"fmt"
	"strings"
)

// MissingInputError reports a required request field or file that was absent.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// ExtractionError reports a document that yielded no usable text.
type ExtractionError struct {
	Source string
}

func (e *ExtractionError) Error() string {
	if e.Source == "" {
		return "could not extract text from the provided resume"
	}
	return fmt.Sprintf("could not extract text from %s", e.Source)
}

// FieldError is a single schema violation in an LLM reply.
type FieldError struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SchemaValidationError reports an LLM reply that does not conform to the
// schema it was asked for.
type SchemaValidationError struct {
	Schema  string
	Details []FieldError
}

func (e *SchemaValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: LLM output failed schema validation", e.Schema))
	for i, d := range e.Details {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, d.Field, d.Message))
	}
	return sb.String()
}

// LLMInvocationError wraps a transport, provider or credential failure.
type LLMInvocationError struct {
	Operation string
	Cause     error
}

func (e *LLMInvocationError) Error() string {
	return fmt.Sprintf("%s: LLM invocation failed: %v", e.Operation, e.Cause)
}

func (e *LLMInvocationError) Unwrap() error {
	return e.Cause
}
