// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for GridPulse provisioning.
// It abstracts the underlying database (e.g., SQLite, PostgreSQL, MySQL)
// behind a consistent interface so the seeders and the setup sequencer can
// interact with the store in a uniform way.
package db // import "github.com/gridpulse/gridpulse/internal/db"

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	// SQL drivers required for integration tests and runtime.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// package-level variables
var (
	store Store
	//go:embed migrations
	embeddedMigrations embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// New opens the database for the given type and DSN, runs any pending
// migrations, and sets the package-level store used by the helpers.
func New(dbType, dsn string) (Store, error) {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return nil, err
	}
	store = s
	return s, nil
}

// IsInitialized reports whether the package-level store has been set.
func IsInitialized() bool {
	return store != nil
}

// GetStore returns the package-level store, or nil when uninitialized.
func GetStore() Store {
	return store
}

// driverName maps a database type to its registered driver name. The pgx
// stdlib registers driver name "pgx"; map "postgres" to that driver.
func driverName(dbType string) string {
	if dbType == "postgres" {
		return "pgx"
	}
	return dbType
}

// Open opens a *sql.DB for the given type and DSN and applies connection
// pool settings. It does NOT run migrations; callers that want an
// initialized store should use NewStoreFromDSN or New.
func Open(dbType, dsn string) (*sql.DB, error) {
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName(dbType), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Conservative pool defaults for a short-lived provisioning tool;
	// overridable via environment variables for CI tuning.
	const (
		defaultMaxOpenConns    = 10
		defaultMaxIdleConns    = 10
		defaultConnMaxLifetime = 5 * time.Minute
	)

	maxOpen := envInt("GRIDPULSE_DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle := envInt("GRIDPULSE_DB_MAX_IDLE_CONNS", defaultMaxIdleConns)

	// In-memory SQLite databases get per-connection schemas; force a single
	// connection so migrations stay visible. Tests commonly use ":memory:".
	if dbType == "sqlite" && strings.Contains(dsn, ":memory:") {
		maxOpen = 1
		maxIdle = 1
	}

	connMax := defaultConnMaxLifetime
	if v := os.Getenv("GRIDPULSE_DB_CONN_MAX_LIFETIME_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			connMax = time.Duration(n) * time.Second
		}
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(connMax)

	dbLogf("db: opened %s driver in %s (max open=%d, max idle=%d)", driverName(dbType), time.Since(start), maxOpen, maxIdle)
	return sqlDB, nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// NewStoreFromDSN opens a sql.DB for the given DSN, runs migrations, and
// returns a Store backed by a long-lived *bun.DB. This hides *sql.DB usage
// from higher-level callers.
func NewStoreFromDSN(dbType, dsn string) (Store, error) {
	sqlDB, err := Open(dbType, dsn)
	if err != nil {
		return nil, err
	}

	migStart := time.Now()
	if err := RunMigrations(sqlDB, dbType); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	dbLogf("db: migrations for %s completed in %s", dbType, time.Since(migStart))

	return NewStore(sqlDB, dbType)
}

// NewStore wraps an already-opened (and migrated) *sql.DB in a Store.
func NewStore(sqlDB *sql.DB, dbType string) (Store, error) {
	bunDB := createBunDB(sqlDB, dbType)
	switch dbType {
	case "sqlite":
		return &SqliteStore{bunStore{bun: bunDB}}, nil
	case "postgres":
		return &PostgresStore{bunStore{bun: bunDB}}, nil
	case "mysql":
		return &MySQLStore{bunStore{bun: bunDB}}, nil
	default:
		return nil, fmt.Errorf("unsupported database type for store creation: '%s'", dbType)
	}
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		// Callers validate dbType earlier; SQLite is the safe fallback.
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// migrationFiles lists the embedded .up.sql files for a dbType, sorted by
// version.
func migrationFiles(dbType string) ([]string, error) {
	migrationsPath := fmt.Sprintf("migrations/%s", dbType)
	entries, err := fs.ReadDir(embeddedMigrations, migrationsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read embedded migrations (%s): %w", migrationsPath, err)
	}

	var ups []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	sort.Strings(ups)
	return ups, nil
}

// PendingMigrations reports the versions of embedded migrations that have
// not yet been applied, in apply order. It creates the schema_migrations
// bookkeeping table if missing, so it is safe to call on a fresh database.
func PendingMigrations(db *sql.DB, dbType string) ([]string, error) {
	ups, err := migrationFiles(dbType)
	if err != nil {
		return nil, err
	}
	if len(ups) == 0 {
		return nil, nil
	}

	if err := ensureSchemaMigrationsTable(db, dbType); err != nil {
		return nil, fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	var pending []string
	for _, fname := range ups {
		version := strings.TrimSuffix(fname, ".up.sql")
		applied, err := migrationApplied(db, dbType, version)
		if err != nil {
			return nil, err
		}
		if !applied {
			pending = append(pending, version)
		}
	}
	return pending, nil
}

func migrationApplied(db *sql.DB, dbType, version string) (bool, error) {
	query := "SELECT 1 FROM schema_migrations WHERE version = ?"
	if dbType == "postgres" {
		query = "SELECT 1 FROM schema_migrations WHERE version = $1"
	}
	var exists int
	err := db.QueryRow(query, version).Scan(&exists)
	if err == nil {
		return true, nil
	}
	if err == sql.ErrNoRows {
		return false, nil
	}
	return false, fmt.Errorf("failed to check migration version %s: %w", version, err)
}

// RunMigrations applies the pending database migrations for a given
// database connection. Already-applied migrations are skipped, so re-running
// is safe.
func RunMigrations(db *sql.DB, dbType string) error {
	start := time.Now()
	dbLogf("db: starting migrations for %s", dbType)
	migrationsPath := fmt.Sprintf("migrations/%s", dbType)

	ups, err := migrationFiles(dbType)
	if err != nil {
		return err
	}
	if len(ups) == 0 {
		// No migrations embedded for this DB type.
		return nil
	}

	if err := ensureSchemaMigrationsTable(db, dbType); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	for _, fname := range ups {
		version := strings.TrimSuffix(fname, ".up.sql")

		applied, err := migrationApplied(db, dbType, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		data, err := embeddedMigrations.ReadFile(path.Join(migrationsPath, fname))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", fname, err)
		}

		// Apply within a transaction
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", version, err)
		}
		if _, err := tx.Exec(string(data)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", version, err)
		}

		insertQuery := "INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)"
		if dbType == "postgres" {
			insertQuery = "INSERT INTO schema_migrations(version, applied_at) VALUES($1, $2)"
		}
		if _, err := tx.Exec(insertQuery, version, time.Now()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to commit migration %s: %w", version, err)
		}
		dbLogf("db: applied migration %s", version)
	}

	dbLogf("db: migrations for %s done in %s", dbType, time.Since(start))
	return nil
}

// ensureSchemaMigrationsTable creates schema_migrations if missing.
// MySQL does not permit TEXT columns as primary keys without a length,
// so use a VARCHAR with a safe length there.
func ensureSchemaMigrationsTable(db *sql.DB, dbType string) error {
	var ddl string
	if dbType == "mysql" {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(191) PRIMARY KEY, applied_at TIMESTAMP)`
	} else {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP)`
	}
	_, err := db.Exec(ddl)
	return err
}
