package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"
	"github.com/pterm/pterm"

	"github.com/nordicpm/repokeeper/internal/domain/catalog"
	"github.com/nordicpm/repokeeper/internal/locator"
)

// Request is the fully populated, validated input to Update. Once built it
// is never mutated; the engine performs no further validation of its fields.
type Request struct {
	// RepoPath is a path at or below the repository root.
	RepoPath string
	// PackageID identifies the package whose descriptor is updated.
	PackageID string
	// Platform identifies the target platform within the release.
	Platform string
	// Channel is the release track; empty means the stable track.
	Channel string
	// Version is the parsed release version.
	Version *semver.Version
	// Payload is the parsed artifact descriptor to store.
	Payload *catalog.Payload
}

// PartialRequest carries whatever the caller provided up front. Every empty
// field is filled from a ValueSource during Resolve. Channel is a pointer so
// an explicitly chosen stable track (empty string) is distinguishable from
// "not provided".
type PartialRequest struct {
	// RepoPath is a path at or below the repository root.
	RepoPath string
	// PackageID identifies the package whose descriptor is updated.
	PackageID string
	// Platform identifies the target platform within the release.
	Platform string
	// Channel is the release track; nil means "ask".
	Channel *string
	// Version is the release version as text.
	Version string
	// PayloadPath points at a standalone TOML payload document.
	PayloadPath string
}

// ErrInvalidInput is returned when a supplied or prompted value fails to
// parse or validate.
var ErrInvalidInput = errors.New("invalid input")

// ValueSource supplies a value for a request field that was not provided up
// front. The initial value is a suggestion the source may return unchanged.
type ValueSource interface {
	Value(prompt, initial string) (string, error)
}

// PromptSource asks the user interactively on the terminal.
type PromptSource struct{}

// Value prompts for a single line of input with an editable default.
func (PromptSource) Value(prompt, initial string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(initial).
		Show(prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", prompt, ErrInvalidInput)
	}

	return answer, nil
}

// StaticSource answers from a fixed prompt-to-value map, falling back to the
// suggested initial value. It fails on anything else, which makes it the
// non-interactive stand-in for PromptSource.
type StaticSource map[string]string

// Value returns the canned answer for the prompt, or the initial suggestion.
func (s StaticSource) Value(prompt, initial string) (string, error) {
	if answer, ok := s[prompt]; ok {
		return answer, nil
	}

	if initial != "" {
		return initial, nil
	}

	return "", fmt.Errorf("%s not provided: %w", prompt, ErrInvalidInput)
}

// Prompt labels. Tests and non-interactive callers key StaticSource by these.
const (
	PromptRepoPath    = "Repository path"
	PromptPackageID   = "Package identifier"
	PromptPayloadPath = "Payload path (toml)"
	PromptChannel     = "Channel (empty for stable)"
	PromptPlatform    = "Platform"
	PromptVersion     = "New release version"
)

// Resolve fills every missing field of the partial request from the source
// and returns the immutable, validated Request the engine consumes. The
// repository is located once up front so a bad path fails before any further
// fields are gathered.
func Resolve(_ context.Context, partial PartialRequest, source ValueSource) (*Request, error) {
	repoPath := partial.RepoPath
	if repoPath == "" {
		workDir, err := os.Getwd()
		if err != nil {
			workDir = "."
		}

		repoPath, err = source.Value(PromptRepoPath, workDir)
		if err != nil {
			return nil, err
		}
	}

	if _, err := locator.Locate(repoPath); err != nil {
		return nil, fmt.Errorf("resolve repository from %s: %w", repoPath, err)
	}

	packageID, err := resolveField(partial.PackageID, PromptPackageID, source)
	if err != nil {
		return nil, err
	}

	payloadPath, err := resolveField(partial.PayloadPath, PromptPayloadPath, source)
	if err != nil {
		return nil, err
	}

	payload, err := readPayload(payloadPath)
	if err != nil {
		return nil, err
	}

	channel := ""
	if partial.Channel != nil {
		channel = *partial.Channel
	} else {
		channel, err = source.Value(PromptChannel, "")
		if err != nil {
			return nil, err
		}
	}

	platform, err := resolveField(partial.Platform, PromptPlatform, source)
	if err != nil {
		return nil, err
	}

	versionText, err := resolveField(partial.Version, PromptVersion, source)
	if err != nil {
		return nil, err
	}

	parsedVersion, err := semver.NewVersion(versionText)
	if err != nil {
		return nil, fmt.Errorf("version %q: %w", versionText, ErrInvalidInput)
	}

	return &Request{
		RepoPath:  repoPath,
		PackageID: packageID,
		Platform:  platform,
		Channel:   channel,
		Version:   parsedVersion,
		Payload:   payload,
	}, nil
}

// resolveField returns the provided value or asks the source for one.
func resolveField(provided, prompt string, source ValueSource) (string, error) {
	if provided != "" {
		return provided, nil
	}

	return source.Value(prompt, "")
}

// readPayload loads and decodes a standalone TOML payload document.
func readPayload(path string) (*catalog.Payload, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read payload %s: %w", path, err)
	}

	var payload catalog.Payload
	if err = toml.Unmarshal(contents, &payload); err != nil {
		return nil, fmt.Errorf("parse payload %s: %w", path, err)
	}

	return &payload, nil
}
