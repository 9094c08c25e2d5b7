package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"timetable/internal/adapters/perf"
)

func openTimedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// TestTimedDB_RecordsEveryCall verifies each wrapped method records one query entry.
func TestTimedDB_RecordsEveryCall(t *testing.T) {
	db := openTimedTestDB(t)
	collector := perf.NewCollector(100)
	tdb := NewTimedDB(db, collector, 0)
	ctx := context.Background()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}

	rows, err := tdb.QueryContext(ctx, "SELECT id, val FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	count := 0
	for rows.Next() {
		count++
	}
	rows.Close()
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	var val string
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "1").Scan(&val); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if val != "hello" {
		t.Errorf("val = %q, want hello", val)
	}

	tx, err := tdb.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	tx.Rollback()

	if collector.TotalRecorded() != 4 {
		t.Errorf("TotalRecorded = %d, want 4", collector.TotalRecorded())
	}
	snap := collector.Snapshot(sqlEpoch, 10)
	if len(snap.SlowestQueries) != 4 {
		t.Errorf("distinct ops = %d, want 4", len(snap.SlowestQueries))
	}
}

// TestTimedDB_NilCollector verifies TimedDB works without a collector.
func TestTimedDB_NilCollector(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, nil, 10)

	if _, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext with nil collector: %v", err)
	}
}

// TestTimedDB_Threshold verifies the slow-query threshold falls back to the default.
func TestTimedDB_Threshold(t *testing.T) {
	db := openTimedTestDB(t)
	if got := NewTimedDB(db, nil, 0).threshold; got != DefaultSlowQueryMs*time.Millisecond {
		t.Errorf("threshold = %v, want %dms", got, DefaultSlowQueryMs)
	}
	if got := NewTimedDB(db, nil, 250).threshold; got != 250*time.Millisecond {
		t.Errorf("threshold = %v, want 250ms", got)
	}
}

// TestTimedDB_ErrorPassthrough verifies SQL errors are returned unchanged and
// timing is still recorded.
func TestTimedDB_ErrorPassthrough(t *testing.T) {
	db := openTimedTestDB(t)
	collector := perf.NewCollector(100)
	tdb := NewTimedDB(db, collector, 0)

	if _, err := tdb.ExecContext(context.Background(), "INSERT INTO nonexistent_table VALUES (?)", 1); err == nil {
		t.Fatal("expected error from invalid SQL, got nil")
	}
	var val string
	err := tdb.QueryRowContext(context.Background(), "SELECT val FROM test WHERE id = ?", "missing").Scan(&val)
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if collector.TotalRecorded() != 2 {
		t.Errorf("TotalRecorded = %d, want 2 (must record even on error)", collector.TotalRecorded())
	}
}

// TestTimedDB_CancelledContext verifies that a cancelled context returns an error.
func TestTimedDB_CancelledContext(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, perf.NewCollector(10), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

// TestTimedDB_LabelsOps verifies entries are labelled by call kind and SQL keyword.
func TestTimedDB_LabelsOps(t *testing.T) {
	db := openTimedTestDB(t)
	collector := perf.NewCollector(100)
	tdb := NewTimedDB(db, collector, 0)
	ctx := context.Background()

	tdb.ExecContext(ctx, "  insert INTO test (id, val) VALUES (?, ?)", "1", "x")
	var val string
	tdb.QueryRowContext(ctx, "SELECT\n\tval FROM test WHERE id = ?", "1").Scan(&val)
	tx, err := tdb.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	tx.Rollback()

	ops := map[string]bool{}
	for _, s := range collector.Snapshot(sqlEpoch, 10).SlowestQueries {
		ops[s.Op] = true
	}
	for _, want := range []string{"exec INSERT", "row SELECT", "begin"} {
		if !ops[want] {
			t.Errorf("missing op %q in %v", want, ops)
		}
	}
}

// TestTimedDB_MigrateAndClose verifies migrations run through the wrapper and
// Close releases the pool.
func TestTimedDB_MigrateAndClose(t *testing.T) {
	raw, err := Open(MemoryPath, 1000)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	collector := perf.NewCollector(100)
	tdb := NewTimedDB(raw, collector, 0)

	if err := MigrateDB(context.Background(), tdb); err != nil {
		t.Fatalf("MigrateDB: %v", err)
	}
	if v, err := SchemaVersion(context.Background(), tdb); err != nil || v != LatestSchemaVersion() {
		t.Errorf("SchemaVersion = %d, %v; want %d", v, err, LatestSchemaVersion())
	}
	if collector.TotalRecorded() == 0 {
		t.Error("migration statements were not recorded")
	}

	if err := tdb.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := raw.Ping(); err == nil {
		t.Error("expected pool to be closed")
	}
}

// BenchmarkTimedDB_ExecContext measures per-call overhead of the timing wrapper.
func BenchmarkTimedDB_ExecContext(b *testing.B) {
	db, _ := sql.Open("sqlite", ":memory:")
	defer db.Close()
	db.SetMaxOpenConns(1)
	db.Exec("CREATE TABLE bench (id INTEGER PRIMARY KEY, val TEXT)")
	tdb := NewTimedDB(db, perf.NewCollector(perf.DefaultRingSize), 0)

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tdb.ExecContext(ctx, "INSERT OR REPLACE INTO bench (id, val) VALUES (?, ?)", 1, "x")
	}
}
