package attio

// Operator is a generic comparison operator accepted from callers. It is
// mapped to Attio's "$"-prefixed token during translation.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNe       Operator = "ne"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpGte      Operator = "gte"
	OpLte      Operator = "lte"
	OpContains Operator = "contains"
)

var wireTokens = map[Operator]string{
	OpEq:       "$eq",
	OpNe:       "$ne",
	OpGt:       "$gt",
	OpLt:       "$lt",
	OpGte:      "$gte",
	OpLte:      "$lte",
	OpContains: "$contains",
}

// allowedOperators is the static compatibility table: which operators Attio
// accepts for each attribute type.
var allowedOperators = map[AttributeType][]Operator{
	TypeText:            {OpEq, OpNe, OpContains},
	TypePersonalName:    {OpEq, OpNe, OpContains},
	TypeEmailAddress:    {OpEq, OpNe, OpContains},
	TypePhoneNumber:     {OpEq, OpNe, OpContains},
	TypeNumber:          {OpEq, OpNe, OpGt, OpLt, OpGte, OpLte},
	TypeCurrency:        {OpEq, OpNe, OpGt, OpLt, OpGte, OpLte},
	TypeTimestamp:       {OpEq, OpNe, OpGt, OpLt, OpGte, OpLte},
	TypeDate:            {OpEq, OpNe, OpGt, OpLt, OpGte, OpLte},
	TypeLocation:        {OpEq, OpNe, OpContains},
	TypeSelect:          {OpEq, OpNe},
	TypeStatus:          {OpEq, OpNe},
	TypeCheckbox:        {OpEq},
	TypeActorReference:  {OpEq, OpNe},
	TypeRecordReference: {OpEq, OpNe},
	TypeInteraction:     {OpEq, OpNe, OpGt, OpLt},
}

// AllowedOperators returns the operators legal for the given attribute type.
// Panics on an unknown type: the type set is closed and validated at schema
// parse time, so reaching here with an unknown type is a programmer error.
func AllowedOperators(t AttributeType) []Operator {
	ops, ok := allowedOperators[t]
	if !ok {
		panic("attio: no operator table entry for attribute type " + string(t))
	}
	return ops
}

func operatorAllowed(t AttributeType, op Operator) bool {
	for _, allowed := range AllowedOperators(t) {
		if allowed == op {
			return true
		}
	}
	return false
}
