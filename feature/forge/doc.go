// Package forge runs one bibforge invocation end to end.
//
// A Request names the inputs (explicit files or a directory), the comparison
// fields, an optional set operation, optional include/exclude patterns and where
// the result goes. Service.Run executes the pipeline:
//
//	validate -> resolve inputs -> load -> lower -> partition -> operation
//	         -> EnsureResult -> filter -> write -> list
//
// Configuration problems are reported as ErrConfiguration before any file is read.
// Loading, parsing and writing failures abort the run; nothing is written unless
// every earlier stage succeeded.
package forge
