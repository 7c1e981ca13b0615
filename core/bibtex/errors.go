package bibtex

import (
	"errors"
	"fmt"
)

// ErrUnbalancedValue indicates a value whose braces cannot be written back safely.
var ErrUnbalancedValue = errors.New("unbalanced braces in value")

// ParseError reports malformed BibTeX input.
type ParseError struct {
	// Source is the name of the input, usually a file path.
	Source string
	// Line is the 1-based line where the problem was detected.
	Line int
	// Msg describes the problem.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
}
