package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	// CurrentSchemaVersion tracks the database schema version
	CurrentSchemaVersion = "1.0.0"
)

// Migration represents a database schema migration
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Content rows: posts and pages share one table, discriminated by kind.
-- Timestamps are integer Unix seconds; uid is the externally visible key.
CREATE TABLE IF NOT EXISTS contents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uid TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    summary TEXT,
    published BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_contents_uid ON contents(uid);
CREATE INDEX IF NOT EXISTS idx_contents_kind ON contents(kind);
CREATE INDEX IF NOT EXISTS idx_contents_published ON contents(published);
CREATE INDEX IF NOT EXISTS idx_contents_created_at ON contents(created_at);

-- Shared tag vocabulary. Tag rows are never deleted.
CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tag TEXT NOT NULL UNIQUE
);

-- Many-to-many association between contents and tags.
CREATE TABLE IF NOT EXISTS contents_tags (
    content_id INTEGER NOT NULL,
    tag_id INTEGER NOT NULL,
    PRIMARY KEY (content_id, tag_id),
    FOREIGN KEY (content_id) REFERENCES contents(id),
    FOREIGN KEY (tag_id) REFERENCES tags(id)
);

CREATE INDEX IF NOT EXISTS idx_contents_tags_tag ON contents_tags(tag_id);
`

const migrationV1Down = `
DROP TABLE IF EXISTS contents_tags;
DROP TABLE IF EXISTS tags;
DROP TABLE IF EXISTS contents;
`

// ApplyMigrations runs all pending migrations
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	// Check if schema_version table exists
	var tableName string
	err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)

	// Parse current version (default to 0.0.0 if no migrations applied or table doesn't exist)
	var currentVersion *semver.Version
	if err == sql.ErrNoRows {
		currentVersion = semver.MustParse("0.0.0")
	} else if err != nil {
		return fmt.Errorf("failed to check schema_version table: %w", err)
	} else {
		var currentVersionStr string
		err = db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&currentVersionStr)
		if err == sql.ErrNoRows || currentVersionStr == "" {
			currentVersion = semver.MustParse("0.0.0")
		} else if err != nil {
			return fmt.Errorf("failed to read schema_version: %w", err)
		} else {
			currentVersion, err = semver.NewVersion(currentVersionStr)
			if err != nil {
				return fmt.Errorf("invalid current schema version %s: %w", currentVersionStr, err)
			}
		}
	}

	// Run migrations in order
	for _, migration := range AllMigrations {
		migrationVersion, err := semver.NewVersion(migration.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", migration.Version, err)
		}

		if !currentVersion.LessThan(migrationVersion) {
			continue // Already applied
		}

		_, err = db.ExecContext(ctx, migration.Up)
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}

		_, err = db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
		}

		currentVersion = migrationVersion
	}

	return nil
}

// RollbackMigration rolls back the most recent migration
func RollbackMigration(ctx context.Context, db *sql.DB) error {
	var currentVersion string
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version ORDER BY applied_at DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("no migrations to rollback: %w", err)
	}

	var migration *Migration
	for i := range AllMigrations {
		if AllMigrations[i].Version == currentVersion {
			migration = &AllMigrations[i]
			break
		}
	}

	if migration == nil {
		return fmt.Errorf("migration %s not found", currentVersion)
	}

	_, err = db.ExecContext(ctx, migration.Down)
	if err != nil {
		return fmt.Errorf("failed to rollback migration %s: %w", currentVersion, err)
	}

	_, err = db.ExecContext(ctx, "DELETE FROM schema_version WHERE version = ?", currentVersion)
	if err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", currentVersion, err)
	}

	return nil
}
