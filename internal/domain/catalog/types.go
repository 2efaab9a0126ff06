package catalog

import "github.com/Masterminds/semver/v3"

// Repository is the marker document stored as index.toml at a repository
// root. Its presence (and a non-empty url) is what identifies a directory as
// a repository.
type Repository struct {
	// Repository holds the repository-level metadata table.
	Repository RepositoryInfo `toml:"repository"`
}

// RepositoryInfo describes the repository itself.
type RepositoryInfo struct {
	// URL is the canonical base URL of the repository. Required.
	URL string `toml:"url"`
	// Name is a human-readable repository name.
	Name string `toml:"name,omitempty"`
	// Description is a short summary of what the repository hosts.
	Description string `toml:"description,omitempty"`
	// DefaultChannel is the channel served when a client asks for none.
	DefaultChannel string `toml:"default_channel,omitempty"`
	// Channels lists the release tracks this repository publishes.
	Channels []string `toml:"channels,omitempty"`
}

// Descriptor is the per-package document stored under
// packages/<id>/index.toml. Releases are ordered newest-first.
type Descriptor struct {
	// Package holds the package-level metadata table.
	Package PackageInfo `toml:"package"`
	// Releases is the ordered release history, most recent at index 0.
	Releases []Release `toml:"release,omitempty"`
}

// PackageInfo describes the package independent of any release.
type PackageInfo struct {
	// ID is the package identifier, matching its directory name.
	ID string `toml:"id"`
	// Name is a human-readable package name.
	Name string `toml:"name,omitempty"`
	// Description is a short summary of the package.
	Description string `toml:"description,omitempty"`
	// Tags are free-form labels used for search and grouping.
	Tags []string `toml:"tags,omitempty"`
}

// Release is one version of a package on one channel.
type Release struct {
	// Version is the semantic version of this release.
	Version string `toml:"version"`
	// Channel is the release track; empty means the stable track.
	Channel string `toml:"channel,omitempty"`
	// Targets holds per-platform artifacts, most recently added at index 0.
	Targets []Target `toml:"target,omitempty"`
}

// Target is the installable artifact for one platform within a release.
type Target struct {
	// Platform identifies the platform/architecture this artifact serves.
	Platform string `toml:"platform"`
	// Payload describes the artifact itself.
	Payload Payload `toml:"payload"`
}

// Payload kind discriminators.
const (
	PayloadWindowsExecutable = "WindowsExecutable"
	PayloadMacOSPackage      = "MacOSPackage"
	PayloadTarballPackage    = "TarballPackage"
)

// Payload is a platform-specific artifact descriptor. It is a tagged union
// flattened into one struct: Kind selects the variant and the remaining
// fields are a superset, each meaningful only for some kinds. Release and
// target matching never look inside a payload.
type Payload struct {
	// Kind is the variant tag, one of the Payload* constants.
	Kind string `toml:"type"`
	// URL is where the artifact is downloaded from.
	URL string `toml:"url"`
	// Size is the download size in bytes.
	Size uint64 `toml:"size,omitempty"`
	// InstalledSize is the on-disk size after installation in bytes.
	InstalledSize uint64 `toml:"installed_size,omitempty"`
	// Checksum is the artifact checksum, algorithm-prefixed.
	Checksum string `toml:"checksum,omitempty"`
	// InstallerKind names the Windows installer technology (msi, inno, nsis).
	InstallerKind string `toml:"installer_kind,omitempty"`
	// ProductCode is the Windows product code used for uninstall lookups.
	ProductCode string `toml:"product_code,omitempty"`
	// PkgID is the macOS package identifier.
	PkgID string `toml:"pkg_id,omitempty"`
	// RequiresReboot reports whether installation needs a reboot.
	RequiresReboot bool `toml:"requires_reboot,omitempty"`
}

// ReleaseIndex returns the index of the release matching the version and
// channel pair, or -1 when no release matches.
func (d *Descriptor) ReleaseIndex(version *semver.Version, channel string) int {
	for i := range d.Releases {
		if d.Releases[i].Matches(version, channel) {
			return i
		}
	}

	return -1
}

// Matches reports whether the release has the given version and channel.
// Channels compare by exact string equality: the empty string is the stable
// track and is never folded with an explicit "stable". Versions compare by
// semantic-version equality; a stored version that does not parse falls back
// to exact string comparison so a damaged entry cannot match a valid request.
func (r *Release) Matches(version *semver.Version, channel string) bool {
	if r.Channel != channel {
		return false
	}

	stored, err := semver.NewVersion(r.Version)
	if err != nil {
		return r.Version == version.Original()
	}

	return stored.Equal(version)
}

// TargetIndex returns the index of the target for the given platform, or -1
// when the release has no such target.
func (r *Release) TargetIndex(platform string) int {
	for i := range r.Targets {
		if r.Targets[i].Platform == platform {
			return i
		}
	}

	return -1
}
