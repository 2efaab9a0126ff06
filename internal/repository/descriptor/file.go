package descriptor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml"

	"github.com/nordicpm/repokeeper/internal/domain/catalog"
)

const (
	// MarkerFilename is the index document name used both for the repository
	// marker at the root and for package descriptors.
	MarkerFilename = "index.toml"

	// PackagesDirname is the directory under the repository root that holds
	// one subdirectory per package.
	PackagesDirname = "packages"

	// defaultFilePermissions is used when writing descriptor files.
	defaultFilePermissions = 0o644
)

// errMissingRepositoryTable is returned when an index document decodes but
// does not declare a repository.
var errMissingRepositoryTable = errors.New("missing [repository] table with url")

// Store reads and writes package descriptors within one repository.
type Store struct {
	// root is the repository root directory.
	root string
	// mu protects concurrent access through the same store.
	mu sync.Mutex
}

// NewStore creates a store rooted at the provided repository directory.
func NewStore(root string) *Store {
	return &Store{
		root: filepath.Clean(root),
	}
}

// DescriptorPath returns the path of the descriptor file for a package id.
func (s *Store) DescriptorPath(id string) string {
	return filepath.Join(s.root, PackagesDirname, id, MarkerFilename)
}

// Load reads and decodes the descriptor for the given package id.
func (s *Store) Load(_ context.Context, id string) (*catalog.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.DescriptorPath(id)

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	var desc catalog.Descriptor
	if err = toml.Unmarshal(contents, &desc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &desc, nil
}

// Save serializes the descriptor fully in memory and overwrites the
// descriptor file for the given package id. A serialization failure leaves
// the existing file untouched.
func (s *Store) Save(_ context.Context, id string, desc *catalog.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.DescriptorPath(id)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &DirCreateError{Path: dir, Err: err}
	}

	data, err := toml.Marshal(desc)
	if err != nil {
		return &SerializeError{Path: path, Err: err}
	}

	if err = os.WriteFile(path, data, defaultFilePermissions); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// ReadRepository probes a directory for the repository marker document. It
// returns the decoded marker, or a path-annotated error when the marker is
// absent, unreadable, undecodable, or decodes without a repository url. A
// package descriptor also lives in a file named index.toml, so the url
// requirement is what keeps the probe from mistaking a package directory for
// a repository root.
func ReadRepository(dir string) (*catalog.Repository, error) {
	path := filepath.Join(dir, MarkerFilename)

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	var repo catalog.Repository
	if err = toml.Unmarshal(contents, &repo); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if repo.Repository.URL == "" {
		return nil, &ParseError{Path: path, Err: errMissingRepositoryTable}
	}

	return &repo, nil
}
