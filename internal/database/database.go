package database

import (
	"database/sql"
	"embed"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

// InitDB opens the database for the given driver, verifies the connection and
// applies all pending migrations. The returned teardown closes the pool.
//
// For sqlite3 the dsn is a file path or ":memory:". For libsql it is the
// Turso URL including the authToken query. For postgres it is a regular
// connection string.
func InitDB(driver, dsn string) (*sql.DB, func(), error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, nil, err
	}

	log.Info("Initializing database", "driver", driver)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite && dsn == ":memory:" {
		// Every new connection to :memory: is a fresh, empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err := migrate(db, dialect); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate %s database: %w", driver, err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	log.Info("Database initialized successfully", "driver", driver)
	return db, teardown, nil
}

// Placeholder returns the bind parameter style used by the driver.
func Placeholder(driver string) sq.PlaceholderFormat {
	if driver == DriverPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", nil
	case DriverLibSQL:
		return "turso", nil
	case DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
