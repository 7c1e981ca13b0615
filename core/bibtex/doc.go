// Package bibtex reads and writes BibTeX reference files.
//
// Parse turns a .bib stream into records in source order. Entry types and citation
// keys become the ENTRYTYPE and ID pseudo-fields; field names keep their casing.
// Values may be brace or quote delimited, bare numbers, @string macro references,
// or '#' concatenations of those. @comment and @preamble blocks and any text outside
// entries are skipped.
//
// Write is the inverse: one field per line, record and field order preserved,
// values wrapped in braces.
//
// # Usage
//
//	recs, err := bibtex.Parse(f, "library.bib")
//	var perr *bibtex.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Line)
//	}
//
//	err = bibtex.Write(os.Stdout, recs)
package bibtex
