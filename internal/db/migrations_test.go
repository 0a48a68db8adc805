package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestRunMigrationsSqlite(t *testing.T) {
	dsn := "file:test_migrations?mode=memory&cache=shared"
	dbConn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	if err := RunMigrations(dbConn, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	rows, err := dbConn.Query("SELECT version FROM schema_migrations")
	if err != nil {
		t.Fatalf("query schema_migrations failed: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			t.Fatalf("scan version failed: %v", err)
		}
		versions = append(versions, v)
	}

	want := map[string]bool{
		"000001_initial_schema":    true,
		"000002_admin_users":       true,
		"000003_whatsapp_messages": true,
	}
	for _, v := range versions {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected migrations: %v", want)
	}
}

func TestRunMigrationsRerunIsIdempotent(t *testing.T) {
	dsn := "file:test_migrations_rerun?mode=memory&cache=shared"
	dbConn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	if err := RunMigrations(dbConn, "sqlite"); err != nil {
		t.Fatalf("first RunMigrations failed: %v", err)
	}
	if err := RunMigrations(dbConn, "sqlite"); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	var count int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 recorded migrations after rerun, got %d", count)
	}
}

func TestPendingMigrationsSqlite(t *testing.T) {
	dsn := "file:test_pending?mode=memory&cache=shared"
	dbConn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	pending, err := PendingMigrations(dbConn, "sqlite")
	if err != nil {
		t.Fatalf("PendingMigrations failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending migrations on a fresh database, got %v", pending)
	}
	if pending[0] != "000001_initial_schema" {
		t.Fatalf("expected migrations in apply order, got %v", pending)
	}

	if err := RunMigrations(dbConn, "sqlite"); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	pending, err = PendingMigrations(dbConn, "sqlite")
	if err != nil {
		t.Fatalf("PendingMigrations after apply failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending migrations after apply, got %v", pending)
	}
}

func TestRunDBMaintenanceSqlite_Smoke(t *testing.T) {
	dsn := "file:test_maint?mode=memory&cache=shared"
	if err := RunDBMaintenance("sqlite", dsn); err != nil {
		t.Fatalf("RunDBMaintenance failed: %v", err)
	}
}
