package tools

import (
	"fmt"

	"github.com/beeper/attio-mcp/pkg/attio"
)

// OK creates a success envelope.
func OK(data any, message string) *Result {
	return &Result{Success: true, Data: data, Message: message}
}

// OKf creates a success envelope with a formatted message.
func OKf(data any, format string, args ...any) *Result {
	return OK(data, fmt.Sprintf(format, args...))
}

// Failure creates a failure envelope from an error, attaching remediation
// guidance where the error kind has any.
func Failure(err error) *Result {
	return &Result{
		Success:    false,
		Message:    err.Error(),
		Suggestion: attio.Suggestion(err),
	}
}

// Failuref creates a failure envelope with a formatted message and an
// explicit suggestion.
func Failuref(suggestion, format string, args ...any) *Result {
	return &Result{
		Success:    false,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: suggestion,
	}
}
