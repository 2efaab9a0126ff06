package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nordicpm/repokeeper/internal/config"
	"github.com/nordicpm/repokeeper/internal/service/publisher"
	"github.com/nordicpm/repokeeper/internal/version"
)

var (
	// configPath to the settings YAML file.
	configPath string

	// packageID, platform, channel, releaseVersion, payloadPath and logLevel
	// prefill the publish request; anything missing is prompted for.
	packageID      string
	platform       string
	channel        string
	releaseVersion string
	payloadPath    string
	logLevel       string
	nonInteractive bool

	// rootCmd represents the base command for publishing a release into a
	// package repository on disk.
	rootCmd = &cobra.Command{
		Use:   "repokeeper [repository-path]",
		Short: "Insert or update a release entry in a package repository",
		Long: "Locate the package repository enclosing the given path, load the named " +
			"package's descriptor, and insert or update the release/target entry " +
			"described by the flags. Missing values are prompted for interactively.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &publisher.Options{
				ConfigPath:     configPath,
				PackageID:      packageID,
				Platform:       platform,
				Version:        releaseVersion,
				PayloadPath:    payloadPath,
				LogLevel:       logLevel,
				NonInteractive: nonInteractive,
			}

			if len(args) > 0 {
				options.RepoPath = args[0]
			}

			// An explicitly empty --channel selects the stable track, which
			// is different from not passing the flag at all.
			if cmd.Flags().Changed("channel") {
				options.Channel = &channel
			}

			return publisher.Run(ctx, options)
		},
	}
)

// Execute runs the repokeeper CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.Flags().StringVarP(&packageID, "id", "i", "", "package identifier")
	rootCmd.Flags().StringVarP(&platform, "platform", "p", "", "target platform")
	rootCmd.Flags().StringVarP(&channel, "channel", "C", "", "release channel (empty selects the stable track)")
	rootCmd.Flags().StringVarP(&releaseVersion, "version", "v", "", "release version")
	rootCmd.Flags().StringVarP(&payloadPath, "payload", "P", "", "path to a TOML payload document")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "logging level (debug, info, warn, error, fatal)")
	rootCmd.Flags().BoolVarP(&nonInteractive, "non-interactive", "n", false, "fail on missing values instead of prompting")
}
