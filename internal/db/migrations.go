package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS shifts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		shift_manager TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'viewer')),
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		event_id TEXT NOT NULL UNIQUE,
		event_type TEXT NOT NULL CHECK (event_type IN ('red', 'yellow')),
		severity TEXT NOT NULL CHECK (severity IN ('critical', 'warning')),
		"timestamp" TIMESTAMPTZ NOT NULL,
		crane_id TEXT NOT NULL,
		zone_type TEXT NOT NULL DEFAULT 'unknown',
		motion_type TEXT NOT NULL DEFAULT 'CT' CHECK (motion_type IN ('CT', 'LT')),
		shift_id BIGINT REFERENCES shifts(id),
		operator TEXT,
		ai_confidence_score DOUBLE PRECISION,
		image_reference TEXT,
		remarks TEXT,
		reviewed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events ("timestamp");`,
	`CREATE INDEX IF NOT EXISTS idx_events_crane_id ON events (crane_id);`,
	`CREATE INDEX IF NOT EXISTS idx_events_event_type ON events (event_type);`,
	`CREATE INDEX IF NOT EXISTS idx_events_shift_id ON events (shift_id);`,
	`INSERT INTO shifts (name, start_time, end_time, shift_manager)
	SELECT v.name, v.start_time, v.end_time, v.shift_manager
	FROM (VALUES
		('Shift A', '06:00', '14:00', NULL),
		('Shift B', '14:00', '22:00', NULL),
		('Shift C', '22:00', '06:00', NULL)
	) AS v(name, start_time, end_time, shift_manager)
	WHERE NOT EXISTS (SELECT 1 FROM shifts);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
