package checks

import (
	"bibforge/core/record"
)

// FieldReport describes how a collection covers one field.
type FieldReport struct {
	// Present is the number of records carrying the field.
	Present int `json:"present"`
	// Missing lists the citation keys of records without the field, in order.
	// Records without a key are listed by their 1-based source position as "#n".
	Missing []string `json:"missing"`
}

// CheckField reports which records of c lack field.
func CheckField(c record.Collection, field string) FieldReport {
	r := FieldReport{Missing: []string{}}
	for i, rec := range c.Records {
		if rec.Has(field) {
			r.Present++
			continue
		}
		r.Missing = append(r.Missing, keyOrPosition(rec, i))
	}
	return r
}
