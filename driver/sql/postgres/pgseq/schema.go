package pgseq

import (
	"context"
	"database/sql"
)

// CreateSchema creates the PostgreSQL schema elements required by [Store].
func CreateSchema(
	ctx context.Context,
	db *sql.DB,
) error {
	if _, err := db.ExecContext(
		ctx,
		`CREATE SCHEMA IF NOT EXISTS sequencekit`,
	); err != nil {
		return err
	}

	if _, err := db.ExecContext(
		ctx,
		`CREATE TABLE IF NOT EXISTS sequencekit.sequence (
			name  TEXT NOT NULL,
			value BIGINT NOT NULL,

			PRIMARY KEY (name)
		)`,
	); err != nil {
		return err
	}

	return nil
}

// DropSchema drops the PostgreSQL schema elements created by [CreateSchema].
func DropSchema(
	ctx context.Context,
	db *sql.DB,
) error {
	_, err := db.ExecContext(
		ctx,
		`DROP SCHEMA IF EXISTS sequencekit CASCADE`,
	)
	return err
}
