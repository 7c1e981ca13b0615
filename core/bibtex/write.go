package bibtex

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bibforge/core/record"
)

const defaultType = "misc"

// Write serializes recs to w in order. Records without an ENTRYTYPE are written
// as @misc. Output is deterministic for a given input.
func Write(w io.Writer, recs []record.Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range recs {
		if i > 0 {
			bw.WriteByte('\n')
		}
		if err := writeEntry(bw, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeEntry(w *bufio.Writer, rec record.Record) error {
	kind := rec.Type()
	if kind == "" {
		kind = defaultType
	}

	var body []record.Field
	for _, f := range rec.Fields() {
		if strings.EqualFold(f.Name, record.TypeField) || strings.EqualFold(f.Name, record.KeyField) {
			continue
		}
		if !balanced(f.Value) {
			return fmt.Errorf("%w: entry %q field %q", ErrUnbalancedValue, rec.Key(), f.Name)
		}
		body = append(body, f)
	}

	fmt.Fprintf(w, "@%s{%s", kind, rec.Key())
	for _, f := range body {
		fmt.Fprintf(w, ",\n %s = {%s}", f.Name, f.Value)
	}
	_, err := w.WriteString("\n}\n")
	return err
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
