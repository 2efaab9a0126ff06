// Package catalog contains the domain types for a package repository: the
// repository marker, per-package descriptors, releases, targets and payloads.
//
// It also defines the matching rules used when upserting a release: versions
// compare by semantic-version equality and channels by exact string equality,
// with the empty string denoting the stable track.
package catalog
