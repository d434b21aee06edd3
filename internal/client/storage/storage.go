// Package storage opens the client's local SQLite database, applies the
// embedded migrations and builds the repositories on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/scapegis/scapegis-cli/internal/client/migrations"
	"github.com/scapegis/scapegis-cli/internal/client/repositories/tokens"
	"github.com/scapegis/scapegis-cli/internal/filex"

	_ "modernc.org/sqlite"
)

type Storage struct {
	DB     *sql.DB
	Tokens *tokens.SQLiteRepository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at dsn and migrates it.
// A single connection is used so that ":memory:" databases behave like files.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("prepare database dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{
		DB:     db,
		Tokens: tokens.NewSQLiteRepository(db),
	}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
