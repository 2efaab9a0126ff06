// Package publisher upserts a release/target entry into a package descriptor
// within an on-disk repository.
//
// A fully populated Request drives one synchronous read-mutate-write cycle
// against a single descriptor file: resolve the repository root, load the
// descriptor, find-or-create the matching release, find-or-create the
// matching target, and write the document back. New releases and targets are
// inserted at the front of their sequences so the newest entries sort first
// on read; matched entries are updated in place.
//
// Missing request fields are filled by a ValueSource before the engine runs,
// so the engine itself never prompts and performs no field validation.
package publisher
