package attio

import (
	"strings"

	"github.com/google/uuid"
)

// LooksLikeOptionID reports whether a filter value is already an opaque
// option/status ID rather than a display label. Attio IDs are RFC 4122
// UUIDs in canonical hyphenated form; anything else is treated as a label
// that needs resolution.
func LooksLikeOptionID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ResolveLabel matches a human-readable label against an option set. Exact
// match wins; failing that, a unique case-insensitive match is accepted.
// Multiple case-insensitive matches are an error rather than a guess, and no
// match at all reports every valid label so the caller can self-correct.
// Archived options still resolve: filters may target historical data.
func ResolveLabel(attribute, label string, options []SelectOption) (SelectOption, error) {
	for _, opt := range options {
		if opt.Title == label {
			return opt, nil
		}
	}

	var matches []SelectOption
	for _, opt := range options {
		if strings.EqualFold(opt.Title, label) {
			matches = append(matches, opt)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		valid := make([]string, len(options))
		for i, opt := range options {
			valid[i] = opt.Title
		}
		return SelectOption{}, &LabelNotFoundError{Attribute: attribute, Label: label, Valid: valid}
	default:
		titles := make([]string, len(matches))
		for i, opt := range matches {
			titles[i] = opt.Title
		}
		return SelectOption{}, &LabelAmbiguousError{Attribute: attribute, Label: label, Matches: titles}
	}
}
