package publisher

import (
	"context"
	"fmt"

	"github.com/nordicpm/repokeeper/internal/domain/catalog"
	"github.com/nordicpm/repokeeper/internal/locator"
	"github.com/nordicpm/repokeeper/internal/logger"
	"github.com/nordicpm/repokeeper/internal/repository/descriptor"
)

// Update applies the request to its package descriptor: the repository root
// is resolved from the request path, the descriptor is loaded, the matching
// release and target are found or created, and the document is written back.
// Applying the same request twice leaves the descriptor in the same state as
// applying it once.
func Update(ctx context.Context, req *Request) error {
	root, err := locator.Locate(req.RepoPath)
	if err != nil {
		return fmt.Errorf("resolve repository from %s: %w", req.RepoPath, err)
	}

	store := descriptor.NewStore(root)

	desc, err := store.Load(ctx, req.PackageID)
	if err != nil {
		return err
	}

	upsert(desc, req)

	logger.InfoKV(ctx, "Updating package descriptor",
		"path", store.DescriptorPath(req.PackageID),
		"package", req.PackageID,
		"version", req.Version.Original(),
		"channel", channelLabel(req.Channel),
		"platform", req.Platform)

	return store.Save(ctx, req.PackageID, desc)
}

// upsert mutates the descriptor in place. Lookup is index-based: the matched
// element is modified at its position, and a missing release or target is
// inserted at the front of its sequence.
func upsert(desc *catalog.Descriptor, req *Request) {
	idx := desc.ReleaseIndex(req.Version, req.Channel)
	if idx < 0 {
		release := catalog.Release{
			Version: req.Version.Original(),
			Channel: req.Channel,
		}
		desc.Releases = append([]catalog.Release{release}, desc.Releases...)
		idx = 0
	}

	release := &desc.Releases[idx]

	tidx := release.TargetIndex(req.Platform)
	if tidx < 0 {
		target := catalog.Target{
			Platform: req.Platform,
			Payload:  *req.Payload,
		}
		release.Targets = append([]catalog.Target{target}, release.Targets...)

		return
	}

	release.Targets[tidx].Payload = *req.Payload
}

// channelLabel renders a channel for logs, naming the stable track explicitly.
func channelLabel(channel string) string {
	if channel == "" {
		return "stable"
	}

	return channel
}
