// Package config defines optional tool settings and provides helpers to
// load, validate and save them in YAML format.
//
// Settings supply defaults for the publish request (repository path, channel,
// platform) and the log level. A missing settings file is not an error: the
// tool simply prompts for everything.
package config
