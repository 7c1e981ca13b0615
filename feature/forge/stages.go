package forge

import (
	"bibforge/core/algebra"
	"bibforge/core/record"
)

// EnsureResult returns ran when an operation produced it. Otherwise it merges all
// collections, so filtering or listing without an operation works on the
// deduplicated union of everything loaded. The boolean reports whether the merge
// was synthesized.
func EnsureResult(ran *algebra.Outcome, collections []record.Collection, field string, policies algebra.Policies) (algebra.Outcome, bool, error) {
	if ran != nil {
		return *ran, false, nil
	}
	out, err := algebra.Apply(algebra.OpMerge, collections, field, policies)
	if err != nil {
		return algebra.Outcome{}, false, err
	}
	return out, true, nil
}

// ListLine renders the requested fields of rec, tab separated. Missing fields are empty.
func ListLine(rec record.Record, fields []string) string {
	line := make([]byte, 0, 64)
	for i, f := range fields {
		if i > 0 {
			line = append(line, '\t')
		}
		v, _ := rec.Get(f)
		line = append(line, v...)
	}
	return string(line)
}
