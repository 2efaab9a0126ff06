// Package descriptor implements persistence for package descriptors and the
// repository marker document.
//
// The Store reads and writes TOML descriptors under
// <root>/packages/<id>/index.toml. Every failure is reported as a distinct,
// path-annotated error type so callers can tell a read failure from a parse,
// serialization or write failure.
package descriptor
