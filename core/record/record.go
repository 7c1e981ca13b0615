package record

import (
	"errors"
	"strings"
)

const (
	// TypeField holds the entry type (article, book, ...).
	TypeField = "ENTRYTYPE"
	// KeyField holds the citation key.
	KeyField = "ID"
)

// ErrInvalidRecord indicates a structured source carried a record that cannot be
// represented as string fields.
var ErrInvalidRecord = errors.New("invalid record")

// Field is a single name/value pair of a Record.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Record is an ordered, schema-less mapping from field name to value.
// Field names keep their source casing but are looked up case-insensitively.
// The zero value is an empty record ready to use.
type Record struct {
	fields []Field
	index  map[string]int
}

// New builds a record from fields in order. A repeated field name replaces the
// earlier value in its original position.
func New(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

// FromMap builds a record from a map. Names are added in the order given by keys,
// which lets callers pick a deterministic order.
func FromMap(keys []string, values map[string]string) Record {
	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		if v, ok := values[k]; ok {
			fields = append(fields, Field{Name: k, Value: v})
		}
	}
	return New(fields...)
}

func (r *Record) set(name, value string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	k := strings.ToLower(name)
	if i, ok := r.index[k]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[k] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the value of the named field and whether the record carries it.
func (r Record) Get(name string) (string, bool) {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Has reports whether the record carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r.index[strings.ToLower(name)]
	return ok
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Type returns the entry type, or an empty string when unset.
func (r Record) Type() string {
	v, _ := r.Get(TypeField)
	return v
}

// Key returns the citation key, or an empty string when unset.
func (r Record) Key() string {
	v, _ := r.Get(KeyField)
	return v
}

// With returns a copy of the record with the field set. The receiver is unchanged.
func (r Record) With(name, value string) Record {
	out := r.clone()
	out.set(name, value)
	return out
}

// Equal reports whether both records carry the same fields in the same order.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for i := range r.fields {
		if r.fields[i] != o.fields[i] {
			return false
		}
	}
	return true
}

func (r Record) clone() Record {
	out := Record{
		fields: make([]Field, len(r.fields)),
		index:  make(map[string]int, len(r.index)),
	}
	copy(out.fields, r.fields)
	for k, v := range r.index {
		out.index[k] = v
	}
	return out
}
