package query

import (
	"slices"
	"strings"
)

// Direction is the sort direction of one ordering key.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// OrderKey is one (field, direction) pair of an ordering.
type OrderKey struct {
	Field     string
	Direction Direction
}

func (k OrderKey) String() string {
	if k.Direction == Desc {
		return "-" + k.Field
	}
	return k.Field
}

// OrderSpec lists sort keys, primary first.
type OrderSpec []OrderKey

// ParseOrdering parses a comma separated ordering expression such as
// "-price,title". Blank entries are skipped.
func ParseOrdering(expr string) OrderSpec {
	var spec OrderSpec
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		dir := Asc
		if strings.HasPrefix(part, "-") {
			dir = Desc
			part = strings.TrimSpace(part[1:])
		}
		if part == "" {
			continue
		}
		spec = append(spec, OrderKey{Field: part, Direction: dir})
	}
	return spec
}

func (s OrderSpec) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

type sortKey struct {
	v  value
	ok bool
}

// sortStable orders records in place. Records missing a key, or whose value
// does not coerce to the key's type, sort before present values ascending
// and after them descending.
func sortStable(records []Record, spec OrderSpec, schema Schema) {
	if len(spec) == 0 || len(records) < 2 {
		return
	}
	type item struct {
		rec  Record
		keys []sortKey
	}
	items := make([]item, len(records))
	for i, r := range records {
		keys := make([]sortKey, len(spec))
		for j, k := range spec {
			keys[j].v, keys[j].ok = schema.field(r, k.Field)
		}
		items[i] = item{rec: r, keys: keys}
	}
	slices.SortStableFunc(items, func(a, b item) int {
		for j, k := range spec {
			ka, kb := a.keys[j], b.keys[j]
			var d int
			switch {
			case !ka.ok && !kb.ok:
				d = 0
			case !ka.ok:
				d = -1
			case !kb.ok:
				d = 1
			default:
				d = compare(ka.v, kb.v)
			}
			if d == 0 {
				continue
			}
			if k.Direction == Desc {
				return -d
			}
			return d
		}
		return 0
	})
	for i := range items {
		records[i] = items[i].rec
	}
}
