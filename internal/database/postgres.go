package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migrateInstance interface {
	Up() error
}

// execConn is the part of *pgx.Conn used by ResetDatabase.
type execConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

var (
	pgxpoolNew             = pgxpool.New
	sqlOpenDB              = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn              = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	pgxConnect = func(ctx context.Context, url string) (execConn, error) {
		return pgx.Connect(ctx, url)
	}
)

// NewPgxPool opens the connection pool. Connections are established lazily.
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// ResetDatabase drops the named database if it exists and creates it again,
// connected through adminURL (a maintenance database such as "postgres").
// Every row of the previous database is lost.
func ResetDatabase(ctx context.Context, adminURL, name string) error {
	if name == "" {
		return errors.New("ResetDatabase: empty database name")
	}
	conn, err := pgxConnect(ctx, adminURL)
	if err != nil {
		return fmt.Errorf("ResetDatabase: connect: %w", err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{name}.Sanitize()
	// DROP/CREATE DATABASE refuse to run inside a transaction block, so
	// force the simple protocol.
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident+" WITH (FORCE)", pgx.QueryExecModeSimpleProtocol); err != nil {
		return fmt.Errorf("ResetDatabase: drop %s: %w", ident, err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident, pgx.QueryExecModeSimpleProtocol); err != nil {
		return fmt.Errorf("ResetDatabase: create %s: %w", ident, err)
	}
	return nil
}

// RunMigrations applies every embedded migration to dbURL.
func RunMigrations(dbURL string) error {
	sqlDB, err := sqlOpenDB("pgx", dbURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := postgresWithInstanceFn(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	sourceDriver, err := iofsNewFn(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrateNewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
