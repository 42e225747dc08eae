// Package file provides the TOML-based configuration layer.
// Configuration persists to config.toml in the locallens directory.
package file
