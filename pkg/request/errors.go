package request

import (
	"strings"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned by a strict Builder.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "request: invalid form: " + strings.Join(parts, "; ")
}

// UserMessage returns the first field message.
func (e *ValidationError) UserMessage() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) checkRank(rank model.Int) {
	if !rank.Positive() {
		e.add("rank", "rank must be positive")
	}
}

func (e *ValidationError) checkValid(field string, v model.Int) {
	if !v.Valid {
		e.add(field, field+" must be a whole number")
	}
}

func (e *ValidationError) result() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
