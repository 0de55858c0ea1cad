package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

var ErrDSNRequired = errors.New("database: dsn is required")
var ErrProviderUnsupported = errors.New("database: storage provider cannot open a connection")

// Connect opens a bun.DB for DSN-based storage providers. Memory and plain
// "bun" providers expect the host to hand in a database; use NewPostgresDB
// or NewSQLiteDB for those.
func Connect(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "sqlite":
		dsn := strings.TrimSpace(cfg.DSN)
		if dsn == "" {
			return nil, ErrDSNRequired
		}
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return NewSQLiteDB(sqlDB), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrProviderUnsupported, provider)
	}
}

// NewSQLiteDB wraps an open sqlite connection with the bun sqlite dialect.
func NewSQLiteDB(sqlDB *sql.DB) *bun.DB {
	return bun.NewDB(sqlDB, sqlitedialect.New())
}

// NewPostgresDB wraps an open postgres connection with the bun pg dialect.
func NewPostgresDB(sqlDB *sql.DB) *bun.DB {
	return bun.NewDB(sqlDB, pgdialect.New())
}
