//go:build sqlite_cgo
// +build sqlite_cgo

package storage

// This file is compiled when building with CGO and the sqlite_cgo tag.
// It uses the C SQLite implementation via mattn/go-sqlite3.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
//
// The C implementation provides:
//   - Faster statement execution
//   - Battle-tested upstream SQLite
//   - Recommended for production deployments
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
