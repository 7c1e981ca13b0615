package algebra

import (
	"bibforge/core/normalize"
	"bibforge/core/record"
)

// Accumulator collects records whose key has not been seen yet.
type Accumulator struct {
	field  string
	policy normalize.Policy
	seen   map[string]struct{}
	result []record.Record
}

// NewAccumulator creates an empty accumulator keyed on field.
func NewAccumulator(field string, policy normalize.Policy) *Accumulator {
	return &Accumulator{
		field:  field,
		policy: policy,
		seen:   make(map[string]struct{}),
	}
}

// Add appends rec if its key is new and reports whether it was kept.
// Records without the field are never kept.
func (a *Accumulator) Add(rec record.Record) bool {
	v, ok := rec.Get(a.field)
	if !ok {
		return false
	}
	key := a.policy.Key(v)
	if _, dup := a.seen[key]; dup {
		return false
	}
	a.seen[key] = struct{}{}
	a.result = append(a.result, rec)
	return true
}

// Seen reports whether a record with this raw field value was already kept.
func (a *Accumulator) Seen(value string) bool {
	_, ok := a.seen[a.policy.Key(value)]
	return ok
}

// Len returns the number of kept records.
func (a *Accumulator) Len() int {
	return len(a.result)
}

// Result returns the kept records as a new collection.
func (a *Accumulator) Result(source string) record.Collection {
	out := make([]record.Record, len(a.result))
	copy(out, a.result)
	return record.Collection{Source: source, Records: out}
}

// Merge returns the union of collections with one record per key, first seen wins.
func Merge(collections []record.Collection, field string, policy normalize.Policy) record.Collection {
	acc := NewAccumulator(field, policy)
	for _, c := range collections {
		for _, rec := range c.Records {
			acc.Add(rec)
		}
	}
	return acc.Result(sourceOf(collections))
}

// Intersection returns the records of b whose key occurs in a, in b's order.
func Intersection(a, b record.Collection, field string, policy normalize.Policy) record.Collection {
	keys := keySet(a, field, policy)
	out := record.Collection{Source: b.Source, Records: []record.Record{}}
	for _, rec := range b.Records {
		v, ok := rec.Get(field)
		if !ok {
			continue
		}
		if _, hit := keys[policy.Key(v)]; hit {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// Difference returns the records of a whose key does not occur in b, in a's order.
func Difference(a, b record.Collection, field string, policy normalize.Policy) record.Collection {
	keys := keySet(b, field, policy)
	out := record.Collection{Source: a.Source, Records: []record.Record{}}
	for _, rec := range a.Records {
		v, ok := rec.Get(field)
		if !ok {
			continue
		}
		if _, hit := keys[policy.Key(v)]; !hit {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

func keySet(c record.Collection, field string, policy normalize.Policy) map[string]struct{} {
	keys := make(map[string]struct{}, c.Len())
	for _, rec := range c.Records {
		if v, ok := rec.Get(field); ok {
			keys[policy.Key(v)] = struct{}{}
		}
	}
	return keys
}

func sourceOf(collections []record.Collection) string {
	if len(collections) == 1 {
		return collections[0].Source
	}
	return "merge"
}
