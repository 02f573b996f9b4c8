// Package attio implements a typed query layer over Attio's record API.
// It translates generic filter expressions into Attio's nested wire filters,
// resolves status/select labels to option IDs, and unwraps the versioned
// value envelopes Attio returns into flat values.
package attio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AttributeType is Attio's declared type for an attribute. The set is closed;
// unknown type slugs from the API are rejected at schema parse time.
type AttributeType string

const (
	TypeText            AttributeType = "text"
	TypePersonalName    AttributeType = "personal_name"
	TypeEmailAddress    AttributeType = "email_address"
	TypePhoneNumber     AttributeType = "phone_number"
	TypeNumber          AttributeType = "number"
	TypeCurrency        AttributeType = "currency"
	TypeTimestamp       AttributeType = "timestamp"
	TypeDate            AttributeType = "date"
	TypeLocation        AttributeType = "location"
	TypeSelect          AttributeType = "select"
	TypeStatus          AttributeType = "status"
	TypeCheckbox        AttributeType = "checkbox"
	TypeActorReference  AttributeType = "actor_reference"
	TypeRecordReference AttributeType = "record_reference"
	TypeInteraction     AttributeType = "interaction"
)

var knownTypes = map[AttributeType]bool{
	TypeText: true, TypePersonalName: true, TypeEmailAddress: true,
	TypePhoneNumber: true, TypeNumber: true, TypeCurrency: true,
	TypeTimestamp: true, TypeDate: true, TypeLocation: true,
	TypeSelect: true, TypeStatus: true, TypeCheckbox: true,
	TypeActorReference: true, TypeRecordReference: true, TypeInteraction: true,
}

// ParseAttributeType normalizes an API type slug (Attio uses hyphens, e.g.
// "email-address") into an AttributeType.
func ParseAttributeType(slug string) (AttributeType, error) {
	t := AttributeType(strings.ReplaceAll(strings.TrimSpace(slug), "-", "_"))
	if !knownTypes[t] {
		return "", fmt.Errorf("unknown attribute type %q", slug)
	}
	return t, nil
}

// AttributeInfo describes one attribute of an object or list.
type AttributeInfo struct {
	Title       string
	Type        AttributeType
	MultiValued bool
}

// Schema maps attribute slugs to their declared types for one object or list.
type Schema map[string]AttributeInfo

// FilterExpression is the caller-supplied generic filter: attribute slug to
// {operator: value} constraints. All constraints combine with AND semantics.
type FilterExpression map[string]map[string]any

// WireQuery is the query payload in Attio's wire format, ready to serialize.
type WireQuery struct {
	Filter map[string]map[string]any `json:"filter,omitempty"`
	Limit  int                       `json:"limit"`
}

// ActorRef identifies the actor that authored a value. Opaque pass-through.
type ActorRef struct {
	Type string  `json:"type"`
	ID   *string `json:"id"`
}

// SelectOption is one status or select option with its display label.
type SelectOption struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Archived bool   `json:"archived"`
}

// PersonalName is the unwrapped form of a personal-name value.
type PersonalName struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Full  string `json:"full"`
}

// Location is the unwrapped form of a location value.
type Location struct {
	Locality    string   `json:"locality"`
	Region      string   `json:"region"`
	CountryCode string   `json:"country_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// RecordReference points at another record without dereferencing it.
type RecordReference struct {
	TargetObjectType string `json:"target_object_type"`
	TargetRecordID   string `json:"target_record_id"`
}

// Interaction is the unwrapped form of an interaction value.
type Interaction struct {
	Type       string    `json:"type"`
	OccurredAt string    `json:"occurred_at"`
	Actor      *ActorRef `json:"actor,omitempty"`
}

// RawRecord is one record as returned by Attio's query endpoints, with its
// attribute values still wrapped in versioned envelopes.
type RawRecord struct {
	ID     map[string]any               `json:"id"`
	Values map[string][]json.RawMessage `json:"values"`

	// EntryValues is populated instead of Values for list entries.
	EntryValues    map[string][]json.RawMessage `json:"entry_values,omitempty"`
	ParentRecordID string                       `json:"parent_record_id,omitempty"`
}

// RawValues returns whichever envelope map the record carries.
func (r *RawRecord) RawValues() map[string][]json.RawMessage {
	if r.Values != nil {
		return r.Values
	}
	return r.EntryValues
}

// Record is a projected record with every attribute unwrapped to a flat value.
type Record struct {
	ID             map[string]any `json:"id"`
	ParentRecordID string         `json:"parent_record_id,omitempty"`
	Values         map[string]any `json:"values"`
}
