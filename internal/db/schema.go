package db

import (
	"context"
	"fmt"
)

// schema creates the tables the service needs. Statements are idempotent so
// EnsureSchema runs on every start.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE TABLE IF NOT EXISTS riders (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id                 TEXT PRIMARY KEY,
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		markers_json       JSONB NOT NULL,
		polylines_json     JSONB NOT NULL,
		route              GEOGRAPHY(LINESTRING, 4326),
		total_distance_m   DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ascent_m     DOUBLE PRECISION NOT NULL DEFAULT 0,
		rider_id           TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		is_deleted         BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS courses_live_idx ON courses (created_at DESC) WHERE NOT is_deleted`,
}

// EnsureSchema applies the schema statements in order.
func EnsureSchema(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
