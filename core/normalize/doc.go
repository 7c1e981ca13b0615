// Package normalize derives comparison keys from raw field values.
//
// Two records are "the same" when their keys are equal. Two named policies exist:
//
//   - StrictKey: Unicode case fold, then drop every byte that is not an ASCII letter.
//     "10.1000/XYZ", "10.1000-xyz" and "10.1000XYZ" all become "xyz".
//   - CasefoldKey: Unicode case fold only. "10.1/X" and "10.1/x" match, "10.1-x" does not.
//
// Merge deduplicates with StrictKey while intersection and difference compare with
// CasefoldKey by default. Both policies are idempotent and never fail; a value with
// no letters yields the empty key, which is still a valid key.
package normalize
