package database

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

// Migrate applies the goose SQL migrations found in dir.
func Migrate(db *sql.DB, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, dir)
}
