// Package record defines the in-memory model shared by every stage of bibforge.
//
// A Record is one bibliographic entry: an ordered list of field name/value pairs.
// Fields are schema-less and record-specific, so every accessor reports whether the
// field is present instead of returning a zero value silently.
//
// # Pseudo-fields
//
// The entry type and the citation key are carried as the fields ENTRYTYPE and ID.
// This lets the citation key act as a comparison field like any other field.
//
// # Collections
//
// A Collection is the ordered sequence of records loaded from one source. Every
// transform in bibforge returns a new Collection and preserves record order.
//
// # Usage
//
//	rec := record.New(
//	    record.Field{Name: record.TypeField, Value: "article"},
//	    record.Field{Name: record.KeyField, Value: "smith2020"},
//	    record.Field{Name: "doi", Value: "10.1000/XYZ"},
//	)
//	doi, ok := rec.Get("DOI") // field names are case-insensitive
//
//	kept, removed := record.Partition(coll, "doi")
package record
