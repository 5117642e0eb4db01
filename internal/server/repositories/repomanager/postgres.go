// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/yeojiphap/choki/internal/dbx"
	"github.com/yeojiphap/choki/internal/server/migrations"
	"github.com/yeojiphap/choki/internal/server/repositories/collected"
	"github.com/yeojiphap/choki/internal/server/repositories/families"
	"github.com/yeojiphap/choki/internal/server/repositories/missions"
	"github.com/yeojiphap/choki/internal/server/repositories/routes"
	"github.com/yeojiphap/choki/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Families(db dbx.DBTX) families.Repository {
	return families.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Missions(db dbx.DBTX) missions.Repository {
	return missions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Collected(db dbx.DBTX) collected.Repository {
	return collected.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Routes(db dbx.DBTX) routes.Repository {
	return routes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// OpenPostgres opens a pgx-backed *sql.DB and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}
