package rpc

import "fmt"

const (
	OpEq    = "="
	OpNotEq = "!="
	OpIn    = "in"
	OpNotIn = "not in"
	OpGte   = ">="
	OpLt    = "<"
	OpLte   = "<="
)

// Condition is a single (field, operator, value) term.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

func (c Condition) String() string {
	return fmt.Sprintf("(%s %s %v)", c.Field, c.Operator, c.Value)
}

func Eq(field string, value any) Condition {
	return Condition{Field: field, Operator: OpEq, Value: value}
}

func In(field string, values any) Condition {
	return Condition{Field: field, Operator: OpIn, Value: values}
}

// Domain is a conjunction of conditions. A nil Domain matches everything.
type Domain []Condition

// And returns a new domain with conds appended; d is left untouched.
func (d Domain) And(conds ...Condition) Domain {
	out := make(Domain, 0, len(d)+len(conds))
	out = append(out, d...)
	return append(out, conds...)
}

func ValidOperator(op string) bool {
	switch op {
	case OpEq, OpNotEq, OpIn, OpNotIn, OpGte, OpLt, OpLte:
		return true
	}
	return false
}
