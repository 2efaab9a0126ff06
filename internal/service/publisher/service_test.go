package publisher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	"github.com/nordicpm/repokeeper/internal/domain/catalog"
	"github.com/nordicpm/repokeeper/internal/locator"
	"github.com/nordicpm/repokeeper/internal/repository/descriptor"
)

// seedRepository creates a repository with one package descriptor holding a
// single stable 1.0.0 release with a single windows target.
func seedRepository(t *testing.T) (string, *descriptor.Store) {
	t.Helper()

	root := t.TempDir()
	marker := []byte("[repository]\nurl = \"https://example.net/repo\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, descriptor.MarkerFilename), marker, 0o644))

	store := descriptor.NewStore(root)
	desc := &catalog.Descriptor{
		Package: catalog.PackageInfo{ID: "hello"},
		Releases: []catalog.Release{
			{
				Version: "1.0.0",
				Targets: []catalog.Target{
					{Platform: "windows", Payload: payload("https://example.net/p1")},
				},
			},
		},
	}
	require.NoError(t, store.Save(context.Background(), "hello", desc))

	return root, store
}

func payload(url string) catalog.Payload {
	return catalog.Payload{
		Kind: catalog.PayloadWindowsExecutable,
		URL:  url,
		Size: 512,
	}
}

func makeRequest(t *testing.T, root, version, channel, platform string, p catalog.Payload) *Request {
	t.Helper()

	parsed, err := semver.NewVersion(version)
	require.NoError(t, err)

	return &Request{
		RepoPath:  root,
		PackageID: "hello",
		Platform:  platform,
		Channel:   channel,
		Version:   parsed,
		Payload:   &p,
	}
}

// TestUpdate_OverwritesMatchingTarget verifies an existing (version, channel,
// platform) entry is overwritten in place without growing any sequence.
func TestUpdate_OverwritesMatchingTarget(t *testing.T) {
	t.Parallel()

	root, store := seedRepository(t)
	ctx := context.Background()

	req := makeRequest(t, root, "1.0.0", "", "windows", payload("https://example.net/p2"))
	require.NoError(t, Update(ctx, req))

	desc, err := store.Load(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, desc.Releases, 1)
	require.Len(t, desc.Releases[0].Targets, 1)
	require.Equal(t, "windows", desc.Releases[0].Targets[0].Platform)
	require.Equal(t, "https://example.net/p2", desc.Releases[0].Targets[0].Payload.URL)
}

// TestUpdate_InsertsNewTargetAtFront verifies a new platform lands at index 0
// of the existing release while the old target keeps its relative position.
func TestUpdate_InsertsNewTargetAtFront(t *testing.T) {
	t.Parallel()

	root, store := seedRepository(t)
	ctx := context.Background()

	req := makeRequest(t, root, "1.0.0", "", "macos", payload("https://example.net/p3"))
	require.NoError(t, Update(ctx, req))

	desc, err := store.Load(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, desc.Releases, 1)
	require.Len(t, desc.Releases[0].Targets, 2)
	require.Equal(t, "macos", desc.Releases[0].Targets[0].Platform)
	require.Equal(t, "https://example.net/p3", desc.Releases[0].Targets[0].Payload.URL)
	require.Equal(t, "windows", desc.Releases[0].Targets[1].Platform)
	require.Equal(t, "https://example.net/p1", desc.Releases[0].Targets[1].Payload.URL)
}

// TestUpdate_InsertsNewReleaseAtFront verifies an unmatched (version, channel)
// pair creates a release at index 0, leaving the existing release unchanged.
func TestUpdate_InsertsNewReleaseAtFront(t *testing.T) {
	t.Parallel()

	root, store := seedRepository(t)
	ctx := context.Background()

	req := makeRequest(t, root, "2.0.0", "beta", "windows", payload("https://example.net/p4"))
	require.NoError(t, Update(ctx, req))

	desc, err := store.Load(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, desc.Releases, 2)

	require.Equal(t, "2.0.0", desc.Releases[0].Version)
	require.Equal(t, "beta", desc.Releases[0].Channel)
	require.Len(t, desc.Releases[0].Targets, 1)
	require.Equal(t, "windows", desc.Releases[0].Targets[0].Platform)
	require.Equal(t, "https://example.net/p4", desc.Releases[0].Targets[0].Payload.URL)

	require.Equal(t, "1.0.0", desc.Releases[1].Version)
	require.Empty(t, desc.Releases[1].Channel)
	require.Len(t, desc.Releases[1].Targets, 1)
	require.Equal(t, "https://example.net/p1", desc.Releases[1].Targets[0].Payload.URL)
}

// TestUpdate_Idempotent verifies applying the same request twice yields the
// same descriptor as applying it once.
func TestUpdate_Idempotent(t *testing.T) {
	t.Parallel()

	root, store := seedRepository(t)
	ctx := context.Background()

	req := makeRequest(t, root, "2.1.0", "nightly", "linux", payload("https://example.net/p5"))
	require.NoError(t, Update(ctx, req))

	once, err := store.Load(ctx, "hello")
	require.NoError(t, err)

	require.NoError(t, Update(ctx, req))

	twice, err := store.Load(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

// TestUpdate_PreservesUniqueness runs a mixed series of updates and verifies
// no duplicate (version, channel) or platform entries appear.
func TestUpdate_PreservesUniqueness(t *testing.T) {
	t.Parallel()

	root, store := seedRepository(t)
	ctx := context.Background()

	requests := []*Request{
		makeRequest(t, root, "1.0.0", "", "windows", payload("https://example.net/a")),
		makeRequest(t, root, "1.0", "", "windows", payload("https://example.net/b")),
		makeRequest(t, root, "1.0.0", "beta", "windows", payload("https://example.net/c")),
		makeRequest(t, root, "1.0.0", "", "macos", payload("https://example.net/d")),
		makeRequest(t, root, "1.0.0", "beta", "windows", payload("https://example.net/e")),
	}
	for _, req := range requests {
		require.NoError(t, Update(ctx, req))
	}

	desc, err := store.Load(ctx, "hello")
	require.NoError(t, err)

	seenReleases := make(map[string]struct{})

	for _, release := range desc.Releases {
		version, err := semver.NewVersion(release.Version)
		require.NoError(t, err)

		key := version.String() + "|" + release.Channel
		_, dup := seenReleases[key]
		require.False(t, dup, "duplicate release %s", key)
		seenReleases[key] = struct{}{}

		seenPlatforms := make(map[string]struct{})
		for _, target := range release.Targets {
			_, dup := seenPlatforms[target.Platform]
			require.False(t, dup, "duplicate platform %s", target.Platform)
			seenPlatforms[target.Platform] = struct{}{}
		}
	}

	// "1.0" must have matched the existing 1.0.0 release, so only the beta
	// release was added.
	require.Len(t, desc.Releases, 2)
}

// TestUpdate_FromNestedPath verifies the repository root is resolved from a
// path deep inside the repository.
func TestUpdate_FromNestedPath(t *testing.T) {
	t.Parallel()

	root, store := seedRepository(t)
	ctx := context.Background()

	nested := filepath.Join(root, descriptor.PackagesDirname, "hello")
	req := makeRequest(t, nested, "1.0.0", "", "windows", payload("https://example.net/p6"))
	require.NoError(t, Update(ctx, req))

	desc, err := store.Load(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, "https://example.net/p6", desc.Releases[0].Targets[0].Payload.URL)
}

// TestUpdate_MissingRepository verifies the locator failure propagates.
func TestUpdate_MissingRepository(t *testing.T) {
	t.Parallel()

	req := makeRequest(t, t.TempDir(), "1.0.0", "", "windows", payload("https://example.net/p"))

	err := Update(context.Background(), req)
	require.ErrorIs(t, err, locator.ErrNotFound)
}

// TestUpdate_MissingDescriptor verifies a repository without the requested
// package surfaces a path-annotated read error.
func TestUpdate_MissingDescriptor(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	marker := []byte("[repository]\nurl = \"https://example.net/repo\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, descriptor.MarkerFilename), marker, 0o644))

	req := makeRequest(t, root, "1.0.0", "", "windows", payload("https://example.net/p"))

	err := Update(context.Background(), req)

	var readErr *descriptor.ReadError
	require.ErrorAs(t, err, &readErr)
}
