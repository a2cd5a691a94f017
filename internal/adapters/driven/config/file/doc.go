// Package file provides the TOML-backed configuration for the CLI.
// It persists settings to the local filesystem under ~/.docket.
//
// Absent keys keep their defaults, so a config file only needs to
// name the settings it changes.
package file
