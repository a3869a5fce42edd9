// Package store opens the local client database and wires up repositories.
// The database lives in the user's home (booktrade.db by default) and holds
// the persisted session token plus the listing cache.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/gmubooktrade/booktrade/internal/client/migrations"
	"github.com/gmubooktrade/booktrade/internal/client/repositories/listings"
	"github.com/gmubooktrade/booktrade/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
	Listings listings.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Listings: listings.NewSQLiteRepository(db),
	}, nil
}
