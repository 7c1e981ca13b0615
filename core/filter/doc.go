// Package filter narrows record collections with include/exclude regular expressions.
//
// Both patterns are matched case-insensitively and unanchored against the values
// of a caller-chosen list of fields. Per record:
//
//  1. If exclude matches any listed field the record carries, it is dropped.
//  2. Otherwise it is kept when include is empty or matches any listed field.
//
// Exclude always wins. A record carrying none of the listed fields passes exclude
// and is kept only when there is no include pattern.
//
// Patterns use Go's RE2 syntax.
package filter
