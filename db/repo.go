package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// ErrNoAvailability reports that a reservation could not be applied because
// at least one night in the requested range has no remaining inventory.
// It is a business outcome, not a storage failure.
var ErrNoAvailability = errors.New("no availability for requested date range")

type StayflowRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(dbPath string) (*StayflowRepo, error) {
	// busy_timeout makes concurrent writers wait on the SQLite writer lock
	// instead of failing immediately with SQLITE_BUSY
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &StayflowRepo{
		db: db,
	}, nil
}

// RunMigrations applies the schema migrations before the repo is opened.
// x-no-tx-wrap=true to disable transaction wrapping for PRAGMA statements, as otherwise it fails:
// https://github.com/golang-migrate/migrate/issues/346
func RunMigrations(sourceURL string, dbPath string) error {
	dbURL := fmt.Sprintf("sqlite://file:%s?cache=shared&mode=rwc&x-no-tx-wrap=true", dbPath)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no migrations to run")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info().Msg("migrations applied successfully")
	return nil
}

func (sr *StayflowRepo) Ping(ctx context.Context) error {
	return sr.db.PingContext(ctx)
}

func (sr *StayflowRepo) Close() error {
	return sr.db.Close()
}
