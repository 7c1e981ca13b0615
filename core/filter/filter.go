package filter

import (
	"errors"
	"fmt"
	"regexp"

	"bibforge/core/record"
)

// ErrInvalidPattern indicates an include or exclude pattern failed to compile.
var ErrInvalidPattern = errors.New("invalid filter pattern")

// Rules is a compiled include/exclude filter over a list of fields.
type Rules struct {
	fields  []string
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// Compile builds Rules. Empty patterns are treated as absent.
func Compile(fields []string, include, exclude string) (*Rules, error) {
	r := &Rules{fields: append([]string(nil), fields...)}

	var err error
	if r.include, err = compile("include", include); err != nil {
		return nil, err
	}
	if r.exclude, err = compile("exclude", exclude); err != nil {
		return nil, err
	}
	return r, nil
}

func compile(kind, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrInvalidPattern, kind, pattern, err)
	}
	return re, nil
}

// Active reports whether at least one pattern is set.
func (r *Rules) Active() bool {
	return r != nil && (r.include != nil || r.exclude != nil)
}

// Fields returns the fields the patterns are tested against.
func (r *Rules) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Keep decides whether rec survives the filter.
func (r *Rules) Keep(rec record.Record) bool {
	if r.exclude != nil && r.matchAny(r.exclude, rec) {
		return false
	}
	return r.include == nil || r.matchAny(r.include, rec)
}

func (r *Rules) matchAny(re *regexp.Regexp, rec record.Record) bool {
	for _, f := range r.fields {
		if v, ok := rec.Get(f); ok && re.MatchString(v) {
			return true
		}
	}
	return false
}

// Apply returns the records of c that Keep accepts, in order.
func (r *Rules) Apply(c record.Collection) record.Collection {
	out := record.Collection{Source: c.Source, Records: []record.Record{}}
	for _, rec := range c.Records {
		if r.Keep(rec) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}
