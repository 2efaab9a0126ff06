package publisher

import (
	"context"
	"fmt"

	"github.com/nordicpm/repokeeper/internal/config"
	"github.com/nordicpm/repokeeper/internal/logger"
)

// Options contains inputs for the publisher entry point. Empty fields are
// filled from settings defaults and then, unless NonInteractive is set,
// gathered interactively.
type Options struct {
	// ConfigPath is an optional path to the tool settings file.
	ConfigPath string
	// RepoPath is a path at or below the repository root.
	RepoPath string
	// PackageID identifies the package whose descriptor is updated.
	PackageID string
	// Platform identifies the target platform within the release.
	Platform string
	// Channel is the release track; nil means "not provided".
	Channel *string
	// Version is the release version as text.
	Version string
	// PayloadPath points at a standalone TOML payload document.
	PayloadPath string
	// LogLevel overrides the settings log level when non-empty.
	LogLevel string
	// NonInteractive fails on missing fields instead of prompting,
	// with an unset channel meaning the stable track.
	NonInteractive bool
}

// Run executes the publish workflow: load settings, assemble the partial
// request, resolve it to a full request, and apply it.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "repokeeper")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyLogLevel(opts.LogLevel, cfg.LogLevel)
	warnIfAnotherPublisherRunning(ctx)

	partial := PartialRequest{
		RepoPath:    firstNonEmpty(opts.RepoPath, cfg.DefaultRepository),
		PackageID:   opts.PackageID,
		Platform:    firstNonEmpty(opts.Platform, cfg.DefaultPlatform),
		Channel:     opts.Channel,
		Version:     opts.Version,
		PayloadPath: opts.PayloadPath,
	}

	if partial.Channel == nil && cfg.DefaultChannel != "" {
		partial.Channel = &cfg.DefaultChannel
	}

	var source ValueSource = PromptSource{}

	if opts.NonInteractive {
		if partial.Channel == nil {
			stable := ""
			partial.Channel = &stable
		}

		source = StaticSource(nil)
	}

	req, err := Resolve(ctx, partial, source)
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}

	if err = Update(ctx, req); err != nil {
		return fmt.Errorf("update package descriptor: %w", err)
	}

	logger.InfoKV(ctx, "Package descriptor updated",
		"package", req.PackageID,
		"version", req.Version.Original(),
		"channel", channelLabel(req.Channel),
		"platform", req.Platform)

	return nil
}

// applyLogLevel applies the first recognized level of the two, flag first.
func applyLogLevel(flagLevel, settingsLevel string) {
	for _, candidate := range []string{flagLevel, settingsLevel} {
		if candidate == "" {
			continue
		}

		if level, ok := logger.ParseLogLevel(candidate); ok {
			logger.SetLevel(level)
			return
		}
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
