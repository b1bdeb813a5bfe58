package validator

import (
	"fmt"
	"strings"
)

// ValidationError describes a single field-level failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Add(field, message string, value interface{}, rule string) {
	*e = append(*e, ValidationError{Field: field, Message: message, Value: value, Rule: rule})
}

// Fields flattens the errors into a field-to-message map for responses.
func (e ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(e))
	for _, err := range e {
		if _, ok := fields[err.Field]; ok {
			continue
		}
		fields[err.Field] = err.Message
	}
	return fields
}

// NewConflictError reports a uniqueness violation as a field error, used
// when the database rejects a duplicate under a concurrent write.
func NewConflictError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Rule: "unique"}}
}
