package attio

import (
	"encoding/json"
	"strconv"
)

// envelopeHeader is the part of every versioned value envelope needed to
// select the currently active entries. active_until == null means current.
type envelopeHeader struct {
	ActiveUntil *string `json:"active_until"`
}

// activeEntries filters a value history down to the currently active entries.
func activeEntries(typ AttributeType, raw []json.RawMessage) ([]json.RawMessage, error) {
	var active []json.RawMessage
	for _, entry := range raw {
		var header envelopeHeader
		if err := json.Unmarshal(entry, &header); err != nil {
			return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "envelope is not an object: " + err.Error()}
		}
		if header.ActiveUntil == nil {
			active = append(active, entry)
		}
	}
	return active, nil
}

// Unwrap extracts the flat value(s) from an attribute's versioned envelopes.
// Only currently active entries contribute. Multi-valued types
// (email_address, phone_number) always yield a list, even for one entry;
// select yields a list only when more than one option is active. Malformed
// envelopes fail with UnextractableValue carrying the raw payload.
func Unwrap(typ AttributeType, raw []json.RawMessage) (any, error) {
	active, err := activeEntries(typ, raw)
	if err != nil {
		return nil, err
	}

	switch typ {
	case TypeText, TypeNumber, TypeDate, TypeTimestamp, TypeCheckbox:
		return unwrapSingle(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				Value any `json:"value"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: err.Error()}
			}
			return payload.Value, nil
		})

	case TypeCurrency:
		return unwrapSingle(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				CurrencyValue *float64 `json:"currency_value"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil || payload.CurrencyValue == nil {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "missing currency_value"}
			}
			return *payload.CurrencyValue, nil
		})

	case TypePersonalName:
		return unwrapSingle(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				First string `json:"first_name"`
				Last  string `json:"last_name"`
				Full  string `json:"full_name"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: err.Error()}
			}
			return PersonalName{First: payload.First, Last: payload.Last, Full: payload.Full}, nil
		})

	case TypeEmailAddress:
		return unwrapList(typ, active, func(entry json.RawMessage) (any, error) {
			return unwrapStringField(typ, entry, "email_address")
		})

	case TypePhoneNumber:
		return unwrapList(typ, active, func(entry json.RawMessage) (any, error) {
			return unwrapStringField(typ, entry, "phone_number")
		})

	case TypeLocation:
		return unwrapSingle(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				Locality    string `json:"locality"`
				Region      string `json:"region"`
				CountryCode string `json:"country_code"`
				Latitude    any    `json:"latitude"`
				Longitude   any    `json:"longitude"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: err.Error()}
			}
			return Location{
				Locality:    payload.Locality,
				Region:      payload.Region,
				CountryCode: payload.CountryCode,
				Latitude:    toFloatPtr(payload.Latitude),
				Longitude:   toFloatPtr(payload.Longitude),
			}, nil
		})

	case TypeSelect:
		return unwrapOneOrMany(typ, active, func(entry json.RawMessage) (any, error) {
			return unwrapOption(typ, entry, "option", "option_id")
		})

	case TypeStatus:
		return unwrapOneOrMany(typ, active, func(entry json.RawMessage) (any, error) {
			return unwrapOption(typ, entry, "status", "status_id")
		})

	case TypeRecordReference:
		return unwrapOneOrMany(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				TargetObject   string `json:"target_object"`
				TargetRecordID string `json:"target_record_id"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil || payload.TargetRecordID == "" {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "missing target_record_id"}
			}
			// Not dereferenced: fetching the target is a separate operation.
			return RecordReference{TargetObjectType: payload.TargetObject, TargetRecordID: payload.TargetRecordID}, nil
		})

	case TypeActorReference:
		return unwrapSingle(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				Type string  `json:"referenced_actor_type"`
				ID   *string `json:"referenced_actor_id"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil || payload.Type == "" {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "missing referenced_actor_type"}
			}
			return ActorRef{Type: payload.Type, ID: payload.ID}, nil
		})

	case TypeInteraction:
		return unwrapSingle(typ, active, func(entry json.RawMessage) (any, error) {
			var payload struct {
				InteractionType string    `json:"interaction_type"`
				InteractedAt    string    `json:"interacted_at"`
				OwnerActor      *ActorRef `json:"owner_actor"`
			}
			if err := json.Unmarshal(entry, &payload); err != nil || payload.InteractionType == "" {
				return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "missing interaction_type"}
			}
			return Interaction{Type: payload.InteractionType, OccurredAt: payload.InteractedAt, Actor: payload.OwnerActor}, nil
		})
	}
	return nil, &UnextractableValueError{Type: typ, Reason: "no unwrapper for attribute type"}
}

// unwrapSingle handles single-valued types: nil when no entry is active,
// the bare value when exactly one is. More than one active entry for a
// single-valued type means the remote schema drifted; fail rather than pick.
func unwrapSingle(typ AttributeType, active []json.RawMessage, extract func(json.RawMessage) (any, error)) (any, error) {
	switch len(active) {
	case 0:
		return nil, nil
	case 1:
		return extract(active[0])
	default:
		return nil, &UnextractableValueError{Type: typ, Raw: active[1], Reason: "multiple active entries for single-valued type"}
	}
}

// unwrapList always yields a list, even for a single entry.
func unwrapList(typ AttributeType, active []json.RawMessage, extract func(json.RawMessage) (any, error)) (any, error) {
	values := make([]any, 0, len(active))
	for _, entry := range active {
		v, err := extract(entry)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// unwrapOneOrMany yields a bare value for one active entry and a list for
// several (multi-select, multi-reference).
func unwrapOneOrMany(typ AttributeType, active []json.RawMessage, extract func(json.RawMessage) (any, error)) (any, error) {
	switch len(active) {
	case 0:
		return nil, nil
	case 1:
		return extract(active[0])
	default:
		return unwrapList(typ, active, extract)
	}
}

func unwrapStringField(typ AttributeType, entry json.RawMessage, field string) (any, error) {
	var payload map[string]any
	if err := json.Unmarshal(entry, &payload); err != nil {
		return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: err.Error()}
	}
	s, ok := payload[field].(string)
	if !ok {
		return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "missing " + field}
	}
	return s, nil
}

func unwrapOption(typ AttributeType, entry json.RawMessage, field, idKey string) (any, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(entry, &payload); err != nil {
		return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: err.Error()}
	}
	var opt struct {
		ID         map[string]string `json:"id"`
		Title      string            `json:"title"`
		IsArchived bool              `json:"is_archived"`
	}
	rawOpt, ok := payload[field]
	if !ok {
		return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: "missing " + field}
	}
	if err := json.Unmarshal(rawOpt, &opt); err != nil {
		return nil, &UnextractableValueError{Type: typ, Raw: entry, Reason: err.Error()}
	}
	return SelectOption{ID: opt.ID[idKey], Title: opt.Title, Archived: opt.IsArchived}, nil
}

func toFloatPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return &f
		}
	}
	return nil
}
