package model

import (
	"errors"
	"fmt"
	"strings"
)

// User-facing fallback messages.
const (
	MsgOptionsFailed    = "Failed to load form options from the server."
	MsgPredictionFailed = "Prediction failed."
)

// NetworkError covers transport failures, undecodable bodies and non-2xx
// responses that carry no usable error field.
type NetworkError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage returns the text shown in the error area.
func (e *NetworkError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return MsgPredictionFailed
}

// SchemaError reports a body whose shape does not match the contract.
type SchemaError struct {
	Op      string
	Reasons []string
	Message string
}

func (e *SchemaError) Error() string {
	if len(e.Reasons) == 0 {
		return e.Op + ": unexpected response shape"
	}
	return e.Op + ": unexpected response shape: " + strings.Join(e.Reasons, "; ")
}

func (e *SchemaError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return MsgPredictionFailed
}

// ServiceError is a non-2xx response with an error field; the message is
// shown verbatim.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
}

func (e *ServiceError) UserMessage() string { return e.Message }

type userMessenger interface {
	UserMessage() string
}

// UserMessage maps any error produced by the flows to the text a user sees.
// Errors that do not carry their own message fall back to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var um userMessenger
	if errors.As(err, &um) {
		if msg := um.UserMessage(); strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fallback
}
