// Package storage opens and migrates the SQLite content database.
//
// The pool is deliberately capped at a single connection: SQLite is a
// single-writer engine and the surrounding service funnels every request
// through this one handle, so a transaction is also a global critical
// section. Callers that need multi-statement atomicity use BeginTx; everyone
// else runs against Querier().
//
// The schema is versioned. Migrations are embedded SQL strings applied in
// semver order and recorded in a schema_version table:
//
//	store, err := storage.Open(cfg.DBPath)
//	if err != nil { ... }
//	defer store.Close()
//
// Two drivers are supported behind build tags: modernc.org/sqlite (pure Go,
// the default) and mattn/go-sqlite3 (cgo, tag sqlite_cgo).
package storage
