package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

// sqlEpoch is an early cut-off that includes every collector entry.
var sqlEpoch = time.Unix(0, 0)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(MemoryPath, 1000)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&n); err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	return n == 1
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(context.Background(), db); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(context.Background(), db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}
	if !tableExists(t, db, "kv") {
		t.Error("kv table missing after migration")
	}
}

// TestMigrateDB_Idempotent verifies that running MigrateDB twice keeps the version.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := MigrateDB(ctx, db); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value, revision, updated_at) VALUES ('k', '[]', 'r', 'now')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := MigrateDB(ctx, db); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}

	version, _ := SchemaVersion(context.Background(), db)
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}
	var value string
	if err := db.QueryRow(`SELECT value FROM kv WHERE key = 'k'`).Scan(&value); err != nil {
		t.Fatalf("data lost across migrations: %v", err)
	}
}

// TestOpen_CreatesDirectory verifies a nested file path is created on first open.
func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "timetable.db")
	db, err := Open(path, 1000)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	defer db.Close()

	if err := MigrateDB(context.Background(), db); err != nil {
		t.Fatalf("MigrateDB: %v", err)
	}
	if !tableExists(t, db, "kv") {
		t.Error("kv table missing")
	}
}
