package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/repository/sqlite/migrations"
	msqlite "modernc.org/sqlite"
)

// casefoldFunc lowercases text with Go's Unicode rules. SQLite's built-in
// LOWER and LIKE only fold ASCII.
const casefoldFunc = "casefold"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(casefoldFunc, 1,
		func(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return casefold(v), nil
			case []byte:
				return casefold(string(v)), nil
			}
			return "", nil
		})
}

func casefold(s string) string {
	return strings.ToLower(s)
}

// DB wraps the SQLite handle and hands out the repositories built on it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps the pragmas below in effect for every query.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies any pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() domain.UserRepository {
	return NewUserRepository(d)
}

func (d *DB) Movies() domain.MovieRepository {
	return &movieRepo{db: d.SqlDB}
}

func (d *DB) ImportRuns() domain.ImportRunRepository {
	return &importRunRepo{db: d.SqlDB}
}
