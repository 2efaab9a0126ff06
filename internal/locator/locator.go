package locator

import (
	"errors"
	"path/filepath"

	"github.com/nordicpm/repokeeper/internal/repository/descriptor"
)

// ErrNotFound is returned when no ancestor of the starting path contains a
// valid repository marker.
var ErrNotFound = errors.New("no package repository found for given path")

// Locate walks upward from start and returns the first ancestor directory
// containing a valid repository marker. The start path may point at the
// marker document itself or at any path within the repository. Probe
// failures along the way (missing marker, I/O error, undecodable document)
// keep the walk going; only reaching the filesystem root without a match
// fails, with ErrNotFound.
func Locate(start string) (string, error) {
	candidate := filepath.Clean(start)
	if filepath.Base(candidate) == descriptor.MarkerFilename {
		candidate = filepath.Dir(candidate)
	}

	for {
		if _, err := descriptor.ReadRepository(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(candidate)
		if parent == candidate {
			return "", ErrNotFound
		}

		candidate = parent
	}
}
