package attio

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// Translator rewrites generic filter expressions into Attio's wire format,
// validating every constraint against the scope's schema on the way.
type Translator struct {
	src Source
}

// NewTranslator creates a translator for one queryable scope.
func NewTranslator(src Source) *Translator {
	return &Translator{src: src}
}

// Translate validates and rewrites a filter expression. For every
// (attribute, operator, value) constraint it checks the attribute exists,
// checks the operator is legal for the attribute's type, resolves
// status/select labels to option IDs, and normalizes value encodings. The
// input expression is never mutated. Limit is clamped to [1, MaxPageSize].
func (t *Translator) Translate(ctx context.Context, filter FilterExpression, limit int) (*WireQuery, error) {
	schema, err := t.src.Schema(ctx)
	if err != nil {
		return nil, err
	}
	return t.TranslateUsing(ctx, schema, filter, limit)
}

// TranslateUsing is Translate with a schema the caller already fetched, so a
// query and its projection can share one schema fetch.
func (t *Translator) TranslateUsing(ctx context.Context, schema Schema, filter FilterExpression, limit int) (*WireQuery, error) {
	wire := &WireQuery{Limit: clampLimit(limit)}
	if len(filter) > 0 {
		wire.Filter = make(map[string]map[string]any, len(filter))
	}
	for attribute, constraints := range filter {
		info, ok := schema[attribute]
		if !ok {
			return nil, &UnknownAttributeError{
				Scope:     t.src.Scope(),
				Attribute: attribute,
				Known:     attributeNames(schema),
			}
		}
		translated := make(map[string]any, len(constraints))
		for opName, value := range constraints {
			op := Operator(opName)
			if _, known := wireTokens[op]; !known || !operatorAllowed(info.Type, op) {
				return nil, &IncompatibleOperatorError{
					Attribute: attribute,
					Type:      info.Type,
					Operator:  op,
					Allowed:   AllowedOperators(info.Type),
				}
			}
			normalized, err := t.normalizeValue(ctx, attribute, info.Type, op, value)
			if err != nil {
				return nil, err
			}
			translated[wireTokens[op]] = normalized
		}
		wire.Filter[attribute] = translated
	}
	return wire, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func attributeNames(schema Schema) []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalizeValue enforces the per-type value encoding. Values that do not
// already match the expected encoding fail instead of being coerced: guessing
// the meaning of an ambiguous numeric or date string returns wrong records
// with no signal.
func (t *Translator) normalizeValue(ctx context.Context, attribute string, typ AttributeType, op Operator, value any) (any, error) {
	malformed := func(reason string) error {
		return &MalformedValueError{Attribute: attribute, Type: typ, Value: value, Reason: reason}
	}

	switch typ {
	case TypeText, TypePersonalName, TypeEmailAddress, TypePhoneNumber, TypeLocation:
		s, ok := value.(string)
		if !ok {
			return nil, malformed("expected a string")
		}
		return s, nil

	case TypeNumber:
		f, ok := asFloat(value)
		if !ok {
			return nil, malformed("expected a number, not a quoted string")
		}
		return f, nil

	case TypeCurrency:
		f, ok := asFloat(value)
		if !ok || f != math.Trunc(f) {
			return nil, malformed("expected integer minor units (e.g. cents)")
		}
		return int64(f), nil

	case TypeDate:
		s, ok := value.(string)
		if !ok {
			return nil, malformed("expected a YYYY-MM-DD string")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return nil, malformed("expected a YYYY-MM-DD string")
		}
		return s, nil

	case TypeTimestamp:
		s, ok := value.(string)
		if !ok {
			return nil, malformed("expected an RFC 3339 timestamp with explicit UTC offset")
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return nil, malformed("expected an RFC 3339 timestamp with explicit UTC offset")
		}
		return s, nil

	case TypeCheckbox:
		b, ok := value.(bool)
		if !ok {
			return nil, malformed("expected true or false")
		}
		return b, nil

	case TypeSelect, TypeStatus:
		s, ok := value.(string)
		if !ok {
			return nil, malformed("expected an option ID or label string")
		}
		if LooksLikeOptionID(s) {
			return s, nil
		}
		// Attio rejects label-based filters outright, so resolve the label
		// to its option ID here.
		options, err := t.src.Options(ctx, attribute, typ)
		if err != nil {
			return nil, fmt.Errorf("resolving label %q for attribute %q: %w", s, attribute, err)
		}
		resolved, err := ResolveLabel(attribute, s, options)
		if err != nil {
			return nil, err
		}
		return resolved.ID, nil

	case TypeRecordReference:
		s, ok := value.(string)
		if !ok || !LooksLikeOptionID(s) {
			return nil, malformed("expected a record ID (UUID)")
		}
		return s, nil

	case TypeActorReference:
		s, ok := value.(string)
		if !ok {
			return nil, malformed("expected an actor ID string")
		}
		return s, nil

	case TypeInteraction:
		s, ok := value.(string)
		if !ok {
			return nil, malformed("expected a string")
		}
		if op == OpGt || op == OpLt {
			if _, err := time.Parse(time.RFC3339, s); err != nil {
				return nil, malformed("expected an RFC 3339 timestamp for ordered comparison")
			}
		}
		return s, nil
	}
	return nil, malformed("unsupported attribute type")
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
