package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations are applied in order, each in its own transaction.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
		CREATE TABLE IF NOT EXISTS rooms (
			id UUID PRIMARY KEY,
			room_number TEXT NOT NULL,
			type TEXT NOT NULL,
			base_price NUMERIC(12, 2),
			current_price NUMERIC(12, 2),
			price NUMERIC(12, 2),
			status TEXT NOT NULL DEFAULT 'AVAILABLE',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			description TEXT
		);

		CREATE TABLE IF NOT EXISTS reservations (
			id UUID PRIMARY KEY,
			occupant_id TEXT NOT NULL,
			room_id UUID NOT NULL REFERENCES rooms(id),
			check_in DATE NOT NULL,
			check_out DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			check_in_confirmed_by_admin BOOLEAN NOT NULL DEFAULT FALSE,
			check_out_confirmed_by_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (check_out > check_in)
		);

		CREATE INDEX IF NOT EXISTS idx_rooms_room_number ON rooms (room_number);
		CREATE INDEX IF NOT EXISTS idx_reservations_room_dates ON reservations (room_id, check_in, check_out);
		CREATE INDEX IF NOT EXISTS idx_reservations_occupant ON reservations (occupant_id);
		`,
	},
	{
		// Collapses the three legacy price columns into one, preferring
		// base_price, then current_price, then price.
		Version: 2,
		Name:    "canonical_room_price",
		SQL: `
		UPDATE rooms SET price = CASE
			WHEN base_price > 0 THEN base_price
			WHEN current_price > 0 THEN current_price
			WHEN price > 0 THEN price
			ELSE 0
		END;

		ALTER TABLE rooms DROP COLUMN base_price;
		ALTER TABLE rooms DROP COLUMN current_price;
		ALTER TABLE rooms ALTER COLUMN price SET DEFAULT 0;
		ALTER TABLE rooms ALTER COLUMN price SET NOT NULL;
		`,
	},
	{
		Version: 3,
		Name:    "no_overlapping_confirmed_reservations",
		SQL: `
		CREATE EXTENSION IF NOT EXISTS btree_gist;

		ALTER TABLE reservations
			ADD CONSTRAINT reservations_no_confirmed_overlap
			EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out) WITH &&)
			WHERE (upper(status) = 'CONFIRMED');
		`,
	},
}

// Migrate applies every migration newer than the recorded schema version.
func Migrate(ctx context.Context, db *sql.DB, logger *zerolog.Logger) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range Migrations {
		if m.Version <= current {
			continue
		}

		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d %s: %w", m.Version, m.Name, err)
		}

		logger.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration applied")
	}

	return nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
		return err
	}

	return tx.Commit()
}
