package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// Op is a filter comparison operator.
type Op string

const (
	Exact       Op = "exact"
	IContains   Op = "icontains"
	IStartsWith Op = "istartswith"
	Lte         Op = "lte"
	Gte         Op = "gte"
	Lt          Op = "lt"
	Gt          Op = "gt"
)

var ops = map[Op]bool{
	Exact: true, IContains: true, IStartsWith: true,
	Lte: true, Gte: true, Lt: true, Gt: true,
}

// ParseOp returns the operator named s.
func ParseOp(s string) (Op, bool) {
	op := Op(s)
	return op, ops[op]
}

// FilterClause is a single field/operator/value predicate.
type FilterClause struct {
	Field string
	Op    Op
	Value any
}

func (c FilterClause) String() string {
	if c.Op == Exact {
		return c.Field
	}
	return c.Field + lookupSep + string(c.Op)
}

// predicate reports whether a record passes one clause.
type predicate func(Record) bool

func never(Record) bool { return false }

// compile binds a clause to the schema, coercing the clause value once.
// fold is owned by the calling goroutine.
func (c FilterClause) compile(schema Schema, fold cases.Caser) predicate {
	typ, known := schema[c.Field]
	if !known {
		return never
	}
	switch c.Op {
	case IContains, IStartsWith:
		if typ != String {
			return never
		}
		needle, ok := c.Value.(string)
		if !ok {
			return never
		}
		needle = fold.String(needle)
		contains := c.Op == IContains
		return func(r Record) bool {
			v, ok := schema.field(r, c.Field)
			if !ok {
				return false
			}
			hay := fold.String(v.s)
			if contains {
				return strings.Contains(hay, needle)
			}
			return strings.HasPrefix(hay, needle)
		}

	case Exact:
		want, ok := coerce(typ, c.Value)
		if !ok {
			return never
		}
		return func(r Record) bool {
			v, ok := schema.field(r, c.Field)
			return ok && compare(v, want) == 0
		}

	case Lte, Gte, Lt, Gt:
		if typ != Number && typ != Date {
			return never
		}
		bound, ok := coerce(typ, c.Value)
		if !ok {
			return never
		}
		op := c.Op
		return func(r Record) bool {
			v, ok := schema.field(r, c.Field)
			if !ok {
				return false
			}
			d := compare(v, bound)
			switch op {
			case Lte:
				return d <= 0
			case Gte:
				return d >= 0
			case Lt:
				return d < 0
			default:
				return d > 0
			}
		}
	}
	return never
}

// searchPredicate matches records where any of fields contains term,
// ignoring case.
func searchPredicate(schema Schema, fields []string, term string, fold cases.Caser) predicate {
	needle := fold.String(term)
	return func(r Record) bool {
		for _, f := range fields {
			v, ok := schema.field(r, f)
			if ok && strings.Contains(fold.String(v.s), needle) {
				return true
			}
		}
		return false
	}
}
