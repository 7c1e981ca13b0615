// Package algebra implements the set operations bibforge runs over record collections.
//
// Records are compared by the comparison key derived from one field through a
// normalize.Policy. All operations are stable: output records appear in the order
// of their source collection, and inputs are never modified.
//
// # Operations
//
//   - Merge: union of any number of collections; the first record seen for a key wins.
//   - Intersection(A, B): the records of B whose key also occurs in A.
//   - Difference(A, B): the records of A whose key does not occur in B.
//
// Intersection and difference take exactly two collections; Operation.CheckOperands
// reports ErrOperandCount otherwise.
//
// # Accumulator
//
// Merge threads an explicit Accumulator (seen keys plus the growing result) through
// its loop. Callers can use one directly to deduplicate incrementally.
//
// # Usage
//
//	out, err := algebra.Apply(algebra.OpMerge, colls, "doi", algebra.DefaultPolicies())
//	fmt.Println(out.Result.Len(), out.Duplicates)
package algebra
