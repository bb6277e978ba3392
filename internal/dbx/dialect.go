package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect describes how to reach and address one SQL engine.
type Dialect struct {
	// Name is the configuration value selecting this dialect.
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose migration dialect.
	Goose string
	// numbered placeholders ($1, $2) instead of ?.
	numbered bool
}

var (
	Postgres = Dialect{Name: "postgres", Driver: "pgx", Goose: "pgx", numbered: true}
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite", Goose: "sqlite3"}
)

// DialectByName resolves a configured driver name.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case Postgres.Name, "pgx", "postgresql":
		return Postgres, nil
	case SQLite.Name, "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// PoolOptions tunes the process-wide connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Open opens a pool for the dialect and verifies it with a ping.
func Open(ctx context.Context, d Dialect, dsn string, p PoolOptions) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	if p.MaxOpenConns > 0 {
		db.SetMaxOpenConns(p.MaxOpenConns)
		db.SetMaxIdleConns(p.MaxOpenConns)
	}
	if p.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(p.ConnMaxIdleTime)
	}
	if p.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(p.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return db, nil
}
