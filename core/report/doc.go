// Package report prints the counts a bibforge run produces.
//
// The Reporter observes each pipeline stage without changing any data. Every count
// is written twice: as a human-readable line on the configured writer (usually
// stdout) and as a structured zap entry. A Summary snapshot of all counts is kept
// for callers and tests.
//
// Written outputs carry an xxh3 digest of their records, so two runs over the same
// inputs can be compared at a glance.
package report
