// Package locator resolves the root of a package repository from any path
// inside it.
//
// Resolution walks the ancestor chain nearest-first, probing each directory
// for a valid repository marker. A marker that is unreadable or fails to
// decode is skipped rather than trusted or treated as fatal, so corruption at
// one level can neither mask a valid repository below it nor pass for one.
package locator
