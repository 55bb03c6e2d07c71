//go:build !sqlite_cgo
// +build !sqlite_cgo

package storage

// This file is compiled when building without the sqlite_cgo tag.
// It uses a pure Go SQLite implementation.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// The pure Go implementation provides:
//   - No C compiler required
//   - Cross-platform compilation
//   - Suitable for development and small deployments
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
