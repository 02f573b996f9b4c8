package attio

import "iter"

// Project walks raw records and unwraps every attribute present using the
// scope's schema. The sequence is lazy and single-pass; it stops at the first
// record whose values cannot be extracted. Attributes absent from a raw
// record are omitted, never defaulted, and attributes the schema does not
// declare are surfaced loudly: dropping them would hide schema drift.
func Project(schema Schema, raw []RawRecord) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for i := range raw {
			record, err := projectRecord(schema, &raw[i])
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}

func projectRecord(schema Schema, raw *RawRecord) (*Record, error) {
	values := make(map[string]any)
	for attribute, envelopes := range raw.RawValues() {
		info, ok := schema[attribute]
		if !ok {
			return nil, &UnextractableValueError{
				Type:   "",
				Reason: "attribute " + attribute + " is not declared by the schema",
			}
		}
		v, err := Unwrap(info.Type, envelopes)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		values[attribute] = v
	}
	return &Record{ID: raw.ID, ParentRecordID: raw.ParentRecordID, Values: values}, nil
}
