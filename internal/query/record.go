package query

import (
	"math"
	"time"

	"github.com/spf13/cast"
)

// Record is one item of a collection, keyed by field name.
type Record map[string]any

// FieldType declares how a field's values are compared.
type FieldType int

const (
	String FieldType = iota
	Number
	Date
	Bool
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Date:
		return "date"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Schema maps field names to their declared types.
type Schema map[string]FieldType

// value is a field value coerced to its declared type.
type value struct {
	typ FieldType
	s   string
	n   float64
	t   time.Time
	b   bool
}

// coerce converts raw into the given type. ok is false when raw is nil or
// cannot be represented as typ. NaN and infinities are not numbers here:
// they have no place in a total order.
func coerce(typ FieldType, raw any) (v value, ok bool) {
	if raw == nil {
		return v, false
	}
	v.typ = typ
	var err error
	switch typ {
	case String:
		// only real strings qualify; numbers are not matched as text
		s, isStr := raw.(string)
		if !isStr {
			return v, false
		}
		v.s = s
	case Number:
		v.n, err = cast.ToFloat64E(raw)
		if err == nil && (math.IsNaN(v.n) || math.IsInf(v.n, 0)) {
			return v, false
		}
	case Date:
		v.t, err = cast.ToTimeE(raw)
	case Bool:
		v.b, err = cast.ToBoolE(raw)
	default:
		return v, false
	}
	return v, err == nil
}

// compare returns -1, 0 or 1. Both values must share a type.
func compare(a, b value) int {
	switch a.typ {
	case String:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		}
	case Number:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
	case Date:
		return a.t.Compare(b.t)
	case Bool:
		switch {
		case !a.b && b.b:
			return -1
		case a.b && !b.b:
			return 1
		}
	}
	return 0
}

// field looks up name on r and coerces it through the schema.
func (s Schema) field(r Record, name string) (value, bool) {
	typ, known := s[name]
	if !known {
		return value{}, false
	}
	raw, present := r[name]
	if !present {
		return value{}, false
	}
	return coerce(typ, raw)
}
