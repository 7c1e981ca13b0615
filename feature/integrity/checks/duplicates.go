package checks

import (
	"fmt"

	"bibforge/core/normalize"
	"bibforge/core/record"
)

// DuplicateGroup holds records sharing one comparison key.
type DuplicateGroup struct {
	// Key is the normalized comparison key.
	Key string `json:"key"`
	// Entries lists the citation keys of the colliding records, first occurrence first.
	Entries []string `json:"entries"`
}

// CheckDuplicates groups the records of c whose field normalizes to the same key
// under policy. Only groups with more than one record are returned, ordered by first
// occurrence. Records without the field are ignored.
func CheckDuplicates(c record.Collection, field string, policy normalize.Policy) []DuplicateGroup {
	index := map[string]int{}
	groups := []DuplicateGroup{}

	for i, rec := range c.Records {
		v, ok := rec.Get(field)
		if !ok {
			continue
		}
		key := policy.Key(v)
		if pos, seen := index[key]; seen {
			groups[pos].Entries = append(groups[pos].Entries, keyOrPosition(rec, i))
			continue
		}
		index[key] = len(groups)
		groups = append(groups, DuplicateGroup{Key: key, Entries: []string{keyOrPosition(rec, i)}})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Entries) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// Surplus returns how many records merge would drop for these groups.
func Surplus(groups []DuplicateGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Entries) - 1
	}
	return n
}

func keyOrPosition(rec record.Record, i int) string {
	if k := rec.Key(); k != "" {
		return k
	}
	return fmt.Sprintf("#%d", i+1)
}
