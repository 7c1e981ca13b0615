// Package integrity inspects reference files without transforming them.
//
// Unlike the 'forge' package which produces a new collection, this package only
// reports on the health of each source with respect to a comparison field.
//
// # Checks Provided
//
//   - Field: counts records that lack the comparison field and lists their keys.
//   - Duplicates: groups records whose comparison keys collide, once under the strict
//     policy used by merge and once under the casefold policy used by intersection
//     and difference. A key that collides only under strict is exactly the case
//     where the two policies disagree.
//
// The check runs from the `check` command.
package integrity
