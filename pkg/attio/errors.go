package attio

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UnknownAttributeError is returned when a filter names an attribute that the
// target object or list does not declare.
type UnknownAttributeError struct {
	Scope     string
	Attribute string
	Known     []string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q on %s (known attributes: %s)",
		e.Attribute, e.Scope, strings.Join(e.Known, ", "))
}

// IncompatibleOperatorError is returned when an operator is not legal for the
// attribute's declared type.
type IncompatibleOperatorError struct {
	Attribute string
	Type      AttributeType
	Operator  Operator
	Allowed   []Operator
}

func (e *IncompatibleOperatorError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, op := range e.Allowed {
		allowed[i] = string(op)
	}
	return fmt.Sprintf("operator %q is not valid for attribute %q (type %s, allowed operators: %s)",
		e.Operator, e.Attribute, e.Type, strings.Join(allowed, ", "))
}

// MalformedValueError is returned when a filter value does not match the
// encoding its attribute type requires. Values are never silently coerced.
type MalformedValueError struct {
	Attribute string
	Type      AttributeType
	Value     any
	Reason    string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value %v for attribute %q (type %s): %s",
		e.Value, e.Attribute, e.Type, e.Reason)
}

// LabelNotFoundError is returned when a status/select label matches no option.
// Valid carries every known label so the caller can self-correct.
type LabelNotFoundError struct {
	Attribute string
	Label     string
	Valid     []string
}

func (e *LabelNotFoundError) Error() string {
	valid := append([]string(nil), e.Valid...)
	sort.Strings(valid)
	return fmt.Sprintf("no option labeled %q for attribute %q (valid labels: %s)",
		e.Label, e.Attribute, strings.Join(valid, ", "))
}

// LabelAmbiguousError is returned when a label matches more than one option
// case-insensitively. Picking a winner silently would filter on the wrong ID.
type LabelAmbiguousError struct {
	Attribute string
	Label     string
	Matches   []string
}

func (e *LabelAmbiguousError) Error() string {
	return fmt.Sprintf("label %q is ambiguous for attribute %q, it matches: %s",
		e.Label, e.Attribute, strings.Join(e.Matches, ", "))
}

// UnextractableValueError is returned when a versioned value envelope cannot
// be unwrapped. It carries the raw envelope for diagnostics; returning a
// placeholder instead would mask CRM schema drift.
type UnextractableValueError struct {
	Type   AttributeType
	Raw    json.RawMessage
	Reason string
}

func (e *UnextractableValueError) Error() string {
	return fmt.Sprintf("cannot extract %s value: %s (raw: %s)", e.Type, e.Reason, string(e.Raw))
}

// SchemaUnavailableError is returned when attribute definitions cannot be
// fetched for an object or list.
type SchemaUnavailableError struct {
	Scope string
	Err   error
}

func (e *SchemaUnavailableError) Error() string {
	return fmt.Sprintf("schema unavailable for %s: %v", e.Scope, e.Err)
}

func (e *SchemaUnavailableError) Unwrap() error { return e.Err }

// RateLimitedError is returned after the retry budget for 429 responses is
// exhausted.
type RateLimitedError struct {
	Attempts int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by Attio after %d attempts", e.Attempts)
}

// RemoteRejectedError is returned for any non-2xx response other than 429.
// Body is the CRM's error body verbatim; callers need it for diagnosis.
type RemoteRejectedError struct {
	StatusCode int
	Body       string
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("attio rejected request: status %d: %s", e.StatusCode, e.Body)
}

// RemoteUnreachableError is returned after a network-level failure that
// survived one retry.
type RemoteUnreachableError struct {
	Err error
}

func (e *RemoteUnreachableError) Error() string {
	return fmt.Sprintf("attio unreachable: %v", e.Err)
}

func (e *RemoteUnreachableError) Unwrap() error { return e.Err }

// IsRateLimited checks if the error is a rate limit failure.
func IsRateLimited(err error) bool {
	var rle *RateLimitedError
	return errors.As(err, &rle)
}

// IsTerminal reports whether the error is ineligible for automatic retry.
// Only rate-limit and network failures are retryable, and both are retried
// inside the client before surfacing.
func IsTerminal(err error) bool {
	var rle *RateLimitedError
	var rue *RemoteUnreachableError
	return !errors.As(err, &rle) && !errors.As(err, &rue)
}

// Suggestion returns remediation guidance for an error, suitable for the
// agent-facing message envelope. Empty if there is nothing actionable.
func Suggestion(err error) string {
	var unknownAttr *UnknownAttributeError
	var badOp *IncompatibleOperatorError
	var badValue *MalformedValueError
	var notFound *LabelNotFoundError
	var ambiguous *LabelAmbiguousError
	var rateLimited *RateLimitedError
	switch {
	case errors.As(err, &unknownAttr):
		return "use get_attributes to list the attributes this object declares"
	case errors.As(err, &badOp):
		return "pick one of the allowed operators listed in the error"
	case errors.As(err, &badValue):
		return "currency values must be integer minor units, dates YYYY-MM-DD, timestamps RFC 3339 with an explicit UTC offset"
	case errors.As(err, &notFound):
		return "use get_select_options or get_list_statuses to obtain a valid label or ID"
	case errors.As(err, &ambiguous):
		return "pass the option ID instead of the label to disambiguate"
	case errors.As(err, &rateLimited):
		return "wait a moment, then retry the call"
	}
	return ""
}
