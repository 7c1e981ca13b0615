package forge

import (
	"errors"
	"fmt"

	"bibforge/core/algebra"
	"bibforge/core/filter"
)

// ErrConfiguration indicates the request cannot run as given.
var ErrConfiguration = errors.New("configuration error")

// Request describes one run.
type Request struct {
	// Inputs lists the files to load, in order. Mutually exclusive with Dir.
	Inputs []string
	// Dir is a directory whose reference files are loaded. Mutually exclusive with Inputs.
	Dir string
	// Output is the path the result is written to. Optional in list mode.
	Output string
	// Fields are the comparison fields. The first one is the primary field; all of
	// them are searched by the filter and printed in list mode.
	Fields []string
	// Operation is the set operation to run. Empty means none.
	Operation algebra.Operation
	// Include keeps only records where a field matches.
	Include string
	// Exclude drops records where a field matches.
	Exclude string
	// Lower lower-cases the primary field of every record after loading.
	Lower bool
	// List prints the fields of every result record.
	List bool
}

// PrimaryField returns the comparison field used by the set operations.
func (r Request) PrimaryField() string {
	if len(r.Fields) == 0 {
		return ""
	}
	return r.Fields[0]
}

// Validate checks everything that can be checked without touching the filesystem
// and returns the compiled filter.
func (r Request) Validate() (*filter.Rules, error) {
	if r.PrimaryField() == "" {
		return nil, fmt.Errorf("%w: no comparison field given", ErrConfiguration)
	}
	for _, f := range r.Fields {
		if f == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrConfiguration)
		}
	}

	switch {
	case len(r.Inputs) > 0 && r.Dir != "":
		return nil, fmt.Errorf("%w: input files and directory are mutually exclusive", ErrConfiguration)
	case len(r.Inputs) == 0 && r.Dir == "":
		return nil, fmt.Errorf("%w: either input files or a directory is required", ErrConfiguration)
	}

	if r.Operation != "" && len(r.Inputs) > 0 {
		if err := r.Operation.CheckOperands(len(r.Inputs)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	rules, err := filter.Compile(r.Fields, r.Include, r.Exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if r.Operation == "" && !rules.Active() && !r.List {
		return nil, fmt.Errorf("%w: nothing to do, select an operation, a filter or list mode", ErrConfiguration)
	}
	if r.Output == "" && !r.List {
		return nil, fmt.Errorf("%w: an output file is required", ErrConfiguration)
	}
	return rules, nil
}
