package algebra

import (
	"errors"
	"fmt"
	"strings"

	"bibforge/core/normalize"
	"bibforge/core/record"
)

// ErrOperandCount indicates an operation was given the wrong number of collections.
var ErrOperandCount = errors.New("wrong number of input collections")

// Operation names a set operation.
type Operation string

const (
	OpMerge        Operation = "merge"
	OpIntersection Operation = "intersection"
	OpDifference   Operation = "difference"
)

// ParseOperation accepts the full names and the one-letter aliases m, i and d.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "merge":
		return OpMerge, nil
	case "i", "intersect", "intersection":
		return OpIntersection, nil
	case "d", "diff", "difference":
		return OpDifference, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// CheckOperands verifies the operation accepts n input collections.
func (op Operation) CheckOperands(n int) error {
	switch op {
	case OpMerge:
		if n < 1 {
			return fmt.Errorf("%w: %s needs at least one input, got %d", ErrOperandCount, op, n)
		}
	case OpIntersection, OpDifference:
		if n != 2 {
			return fmt.Errorf("%w: %s needs exactly two inputs, got %d", ErrOperandCount, op, n)
		}
	default:
		return fmt.Errorf("unknown operation %q", string(op))
	}
	return nil
}

// Policies pairs the key policy of merge with the one of intersection and difference.
type Policies struct {
	Merge normalize.Policy
	Pair  normalize.Policy
}

// DefaultPolicies returns StrictKey for merge and CasefoldKey for the pair operations.
func DefaultPolicies() Policies {
	return Policies{Merge: normalize.StrictKey, Pair: normalize.CasefoldKey}
}

// PoliciesFromConfig parses the configured policy names.
func PoliciesFromConfig(cfg Config) (Policies, error) {
	merge, err := normalize.ParsePolicy(cfg.MergePolicy)
	if err != nil {
		return Policies{}, fmt.Errorf("merge policy: %w", err)
	}
	pair, err := normalize.ParsePolicy(cfg.PairPolicy)
	if err != nil {
		return Policies{}, fmt.Errorf("pair policy: %w", err)
	}
	return Policies{Merge: merge, Pair: pair}, nil
}

// Outcome is the result of one operation.
type Outcome struct {
	// Operation that produced the result.
	Operation Operation
	// Result holds the output records.
	Result record.Collection
	// Inputs is the total number of records given to the operation.
	Inputs int
	// Duplicates is the number of records merge dropped. Zero for other operations.
	Duplicates int
}

// Apply runs op over collections, comparing by field.
func Apply(op Operation, collections []record.Collection, field string, policies Policies) (Outcome, error) {
	if err := op.CheckOperands(len(collections)); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Operation: op, Inputs: record.Total(collections)}
	switch op {
	case OpMerge:
		out.Result = Merge(collections, field, policies.Merge)
		out.Duplicates = out.Inputs - out.Result.Len()
	case OpIntersection:
		out.Result = Intersection(collections[0], collections[1], field, policies.Pair)
	case OpDifference:
		out.Result = Difference(collections[0], collections[1], field, policies.Pair)
	}
	return out, nil
}
