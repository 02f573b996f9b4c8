package attio

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeSource struct {
	schema      Schema
	options     map[string][]SelectOption
	optionCalls int
	queried     []*WireQuery
}

func (f *fakeSource) Scope() string { return "object people" }

func (f *fakeSource) Schema(ctx context.Context) (Schema, error) {
	return f.schema, nil
}

func (f *fakeSource) Options(ctx context.Context, attribute string, typ AttributeType) ([]SelectOption, error) {
	f.optionCalls++
	opts, ok := f.options[attribute]
	if !ok {
		return nil, errors.New("no options configured for " + attribute)
	}
	return opts, nil
}

func (f *fakeSource) Query(ctx context.Context, q *WireQuery) ([]RawRecord, error) {
	f.queried = append(f.queried, q)
	return nil, nil
}

func testSchema() Schema {
	return Schema{
		"name":                {Type: TypePersonalName},
		"description":         {Type: TypeText},
		"primary_location":    {Type: TypeLocation},
		"email_addresses":     {Type: TypeEmailAddress, MultiValued: true},
		"employee_count":      {Type: TypeNumber},
		"deal_value":          {Type: TypeCurrency},
		"founded_on":          {Type: TypeDate},
		"last_contacted":      {Type: TypeTimestamp},
		"invitation_accepted": {Type: TypeCheckbox},
		"status":              {Type: TypeStatus},
		"tier":                {Type: TypeSelect},
		"owner":               {Type: TypeActorReference},
		"company":             {Type: TypeRecordReference},
		"last_interaction":    {Type: TypeInteraction},
	}
}

func translate(t *testing.T, src Source, filter FilterExpression, limit int) (*WireQuery, error) {
	t.Helper()
	return NewTranslator(src).Translate(context.Background(), filter, limit)
}

func TestTranslateSucceedsExactlyForAllowedOperators(t *testing.T) {
	values := map[AttributeType]any{
		TypeText: "x", TypePersonalName: "x", TypeEmailAddress: "x",
		TypePhoneNumber: "x", TypeLocation: "x",
		TypeNumber: 3.0, TypeCurrency: 100,
		TypeDate: "2026-01-02", TypeTimestamp: "2026-01-02T03:04:05Z",
		TypeCheckbox: true,
		TypeSelect:   "11111111-2222-3333-4444-555555555555",
		TypeStatus:   "11111111-2222-3333-4444-555555555555",
		TypeActorReference:  "actor-1",
		TypeRecordReference: "11111111-2222-3333-4444-555555555555",
		TypeInteraction:     "2026-01-02T03:04:05Z",
	}
	allOps := []Operator{OpEq, OpNe, OpGt, OpLt, OpGte, OpLte, OpContains}

	for typ := range knownTypes {
		src := &fakeSource{schema: Schema{"attr": {Type: typ}}}
		for _, op := range allOps {
			filter := FilterExpression{"attr": {string(op): values[typ]}}
			_, err := translate(t, src, filter, 10)
			if operatorAllowed(typ, op) {
				if err != nil {
					t.Errorf("type %s op %s: expected success, got %v", typ, op, err)
				}
				continue
			}
			var incompatible *IncompatibleOperatorError
			if !errors.As(err, &incompatible) {
				t.Errorf("type %s op %s: expected IncompatibleOperatorError, got %v", typ, op, err)
			}
		}
	}
}

func TestTranslateLocationContains(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	wire, err := translate(t, src, FilterExpression{
		"primary_location": {"contains": "London"},
	}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wire.Limit != 20 {
		t.Fatalf("expected limit 20, got %d", wire.Limit)
	}
	if got := wire.Filter["primary_location"]["$contains"]; got != "London" {
		t.Fatalf("expected $contains London, got %#v", wire.Filter)
	}
}

func TestTranslateResolvesStatusLabel(t *testing.T) {
	const dueDiligenceID = "c8fb3791-3cec-4b5c-9c95-2a7a8f9cd1e3"
	src := &fakeSource{
		schema: testSchema(),
		options: map[string][]SelectOption{
			"status": {
				{ID: "b1a9e6a0-0000-4000-8000-000000000001", Title: "Prospect"},
				{ID: dueDiligenceID, Title: "Due Diligence"},
			},
		},
	}
	wire, err := translate(t, src, FilterExpression{
		"status": {"eq": "Due Diligence"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wire.Filter["status"]["$eq"]; got != dueDiligenceID {
		t.Fatalf("expected resolved ID %s, got %#v", dueDiligenceID, got)
	}
}

func TestTranslateSkipsResolutionForOptionIDs(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	wire, err := translate(t, src, FilterExpression{
		"status": {"eq": "c8fb3791-3cec-4b5c-9c95-2a7a8f9cd1e3"},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.optionCalls != 0 {
		t.Fatalf("expected no option fetch for a UUID value, got %d calls", src.optionCalls)
	}
	if got := wire.Filter["status"]["$eq"]; got != "c8fb3791-3cec-4b5c-9c95-2a7a8f9cd1e3" {
		t.Fatalf("ID value must pass through unchanged, got %#v", got)
	}
}

func TestTranslateLabelNotFoundListsValidLabels(t *testing.T) {
	src := &fakeSource{
		schema: testSchema(),
		options: map[string][]SelectOption{
			"status": {{ID: "x", Title: "Prospect"}, {ID: "y", Title: "Won"}},
		},
	}
	_, err := translate(t, src, FilterExpression{"status": {"eq": "Lost"}}, 10)
	var notFound *LabelNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected LabelNotFoundError, got %v", err)
	}
	if len(notFound.Valid) != 2 {
		t.Fatalf("expected 2 valid labels, got %v", notFound.Valid)
	}
	for _, label := range []string{"Prospect", "Won"} {
		if !strings.Contains(err.Error(), label) {
			t.Fatalf("error must list valid label %q: %s", label, err)
		}
	}
}

func TestTranslateCheckboxRejectsOrderedOperator(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	_, err := translate(t, src, FilterExpression{
		"invitation_accepted": {"gt": true},
	}, 10)
	var incompatible *IncompatibleOperatorError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleOperatorError, got %v", err)
	}
	if incompatible.Attribute != "invitation_accepted" || incompatible.Type != TypeCheckbox {
		t.Fatalf("error must name the attribute and type: %+v", incompatible)
	}
	msg := err.Error()
	for _, want := range []string{"invitation_accepted", "checkbox", "eq"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message missing %q: %s", want, msg)
		}
	}
}

func TestTranslateUnknownAttribute(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	_, err := translate(t, src, FilterExpression{"nonexistent": {"eq": "x"}}, 10)
	var unknown *UnknownAttributeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownAttributeError, got %v", err)
	}
	if unknown.Attribute != "nonexistent" {
		t.Fatalf("error must name the attribute: %+v", unknown)
	}
}

func TestTranslateUnknownOperator(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	_, err := translate(t, src, FilterExpression{"description": {"between": "x"}}, 10)
	var incompatible *IncompatibleOperatorError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleOperatorError for unknown operator, got %v", err)
	}
}

func TestTranslateClampsLimit(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	cases := []struct {
		in, want int
	}{
		{500, 100},
		{0, 1},
		{-3, 1},
		{1, 1},
		{100, 100},
		{25, 25},
	}
	for _, tc := range cases {
		wire, err := translate(t, src, nil, tc.in)
		if err != nil {
			t.Fatalf("limit %d: unexpected error: %v", tc.in, err)
		}
		if wire.Limit != tc.want {
			t.Fatalf("limit %d: expected clamp to %d, got %d", tc.in, tc.want, wire.Limit)
		}
	}
}

func TestTranslateMalformedValues(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	cases := []struct {
		name   string
		filter FilterExpression
	}{
		{"currency fractional", FilterExpression{"deal_value": {"gt": 10.5}}},
		{"currency string", FilterExpression{"deal_value": {"gt": "1000"}}},
		{"number string", FilterExpression{"employee_count": {"gte": "50"}}},
		{"date wrong layout", FilterExpression{"founded_on": {"eq": "02/01/2026"}}},
		{"date out of range", FilterExpression{"founded_on": {"eq": "2026-13-40"}}},
		{"timestamp no offset", FilterExpression{"last_contacted": {"lt": "2026-01-02 03:04:05"}}},
		{"checkbox string", FilterExpression{"invitation_accepted": {"eq": "yes"}}},
		{"record reference label", FilterExpression{"company": {"eq": "Acme Corp"}}},
		{"text number", FilterExpression{"description": {"eq": 12}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := translate(t, src, tc.filter, 10)
			var malformed *MalformedValueError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedValueError, got %v", err)
			}
		})
	}
}

func TestTranslateAcceptsWellFormedValues(t *testing.T) {
	src := &fakeSource{schema: testSchema()}
	wire, err := translate(t, src, FilterExpression{
		"deal_value":          {"gte": 150000},
		"employee_count":      {"gt": 10.0, "lte": 500.0},
		"founded_on":          {"gte": "2019-05-01"},
		"last_contacted":      {"lt": "2026-08-30T12:00:00+02:00"},
		"invitation_accepted": {"eq": true},
		"description":         {"contains": "fintech"},
	}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wire.Filter["deal_value"]["$gte"]; got != int64(150000) {
		t.Fatalf("currency must normalize to integer minor units, got %#v", got)
	}
	if len(wire.Filter["employee_count"]) != 2 {
		t.Fatalf("both operators of one attribute must survive: %#v", wire.Filter["employee_count"])
	}
}

func TestTranslateDoesNotMutateInput(t *testing.T) {
	src := &fakeSource{
		schema: testSchema(),
		options: map[string][]SelectOption{
			"status": {{ID: "c8fb3791-3cec-4b5c-9c95-2a7a8f9cd1e3", Title: "Won"}},
		},
	}
	filter := FilterExpression{"status": {"eq": "Won"}}
	if _, err := translate(t, src, filter, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["status"]["eq"] != "Won" {
		t.Fatalf("input expression was mutated: %#v", filter)
	}
}
