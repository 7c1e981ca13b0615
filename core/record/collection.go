package record

import "strings"

// Collection is an ordered sequence of records from one logical source.
type Collection struct {
	// Source names where the records came from (usually a file path).
	Source string
	// Records in source order.
	Records []Record
}

// NewCollection creates a collection over recs.
func NewCollection(source string, recs ...Record) Collection {
	return Collection{Source: source, Records: recs}
}

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c.Records)
}

// Empty reports whether the collection holds no records.
func (c Collection) Empty() bool {
	return len(c.Records) == 0
}

// Partition splits c into the records that carry field and those that do not.
// Both halves keep the original order. c is not modified.
func Partition(c Collection, field string) (kept, removed Collection) {
	kept = Collection{Source: c.Source, Records: make([]Record, 0, len(c.Records))}
	removed = Collection{Source: c.Source}
	for _, rec := range c.Records {
		if rec.Has(field) {
			kept.Records = append(kept.Records, rec)
		} else {
			removed.Records = append(removed.Records, rec)
		}
	}
	return kept, removed
}

// LowerField returns a copy of c where field is lower-cased on every record
// that carries it.
func LowerField(c Collection, field string) Collection {
	out := Collection{Source: c.Source, Records: make([]Record, len(c.Records))}
	for i, rec := range c.Records {
		if v, ok := rec.Get(field); ok {
			rec = rec.With(field, strings.ToLower(v))
		}
		out.Records[i] = rec
	}
	return out
}

// Total sums the number of records across collections.
func Total(cs []Collection) int {
	n := 0
	for _, c := range cs {
		n += c.Len()
	}
	return n
}
