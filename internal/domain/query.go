package domain

import "fmt"

// Op is a comparison operator usable in a Predicate.
type Op string

const (
	OpEq  Op = "="
	OpNe  Op = "<>"
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

// ParseOp accepts the SQL spelling of an operator plus "!=".
func ParseOp(s string) (Op, error) {
	switch s {
	case "=", "==":
		return OpEq, nil
	case "<>", "!=":
		return OpNe, nil
	case "<":
		return OpLt, nil
	case "<=":
		return OpLte, nil
	case ">":
		return OpGt, nil
	case ">=":
		return OpGte, nil
	}
	return "", ErrValidation("unknown operator %q", s)
}

// Predicate compares a schema field with a value.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Predicate  { return Predicate{Field: field, Op: OpEq, Value: value} }
func Ne(field string, value any) Predicate  { return Predicate{Field: field, Op: OpNe, Value: value} }
func Lt(field string, value any) Predicate  { return Predicate{Field: field, Op: OpLt, Value: value} }
func Lte(field string, value any) Predicate { return Predicate{Field: field, Op: OpLte, Value: value} }
func Gt(field string, value any) Predicate  { return Predicate{Field: field, Op: OpGt, Value: value} }
func Gte(field string, value any) Predicate { return Predicate{Field: field, Op: OpGte, Value: value} }

// Order sorts by a schema field.
type Order struct {
	Field string
	Desc  bool
}

// Query selects rows of one entity. A zero Query lists everything in the
// entity's default ordering.
type Query struct {
	Where   []Predicate
	OrderBy []Order
	Limit   int
	Offset  int
}

// Filter returns a Query with the given predicates.
func Filter(preds ...Predicate) Query {
	return Query{Where: preds}
}

// Column is a resolved, validated reference to a table column.
type Column struct {
	Name string
	Desc bool
}

// Condition is a Predicate resolved against the schema.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Resolve maps the query's field names to columns of entity e. Unknown
// fields and operators fail with ValidationError; an empty OrderBy falls
// back to the entity's declared ordering.
func (q Query) Resolve(e Entity) ([]Condition, []Column, error) {
	conds := make([]Condition, 0, len(q.Where))
	for _, p := range q.Where {
		f, ok := e.Field(p.Field)
		if !ok {
			return nil, nil, ErrValidation("%s has no field %q", e.Name, p.Field)
		}
		switch p.Op {
		case OpEq, OpNe, OpLt, OpLte, OpGt, OpGte:
		default:
			return nil, nil, ErrValidation("unknown operator %q", p.Op)
		}
		if p.Value == nil {
			return nil, nil, ErrValidation("%s.%s: comparison with null", e.Name, p.Field)
		}
		conds = append(conds, Condition{Column: f.Column, Op: p.Op, Value: p.Value})
	}

	order := q.OrderBy
	if len(order) == 0 {
		for _, name := range e.Ordering {
			order = append(order, Order{Field: name})
		}
	}
	cols := make([]Column, 0, len(order))
	for _, o := range order {
		f, ok := e.Field(o.Field)
		if !ok {
			return nil, nil, ErrValidation("%s has no field %q", e.Name, o.Field)
		}
		cols = append(cols, Column{Name: f.Column, Desc: o.Desc})
	}

	if q.Limit < 0 || q.Offset < 0 {
		return nil, nil, ErrValidation("limit and offset must be >= 0")
	}
	return conds, cols, nil
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s %s %v", p.Field, p.Op, p.Value)
}
