package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const sqlStateUndefinedTable = "42P01"

// isUndefinedTable reports whether the schema has not been migrated yet.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUndefinedTable
	}
	return false
}

// wrap annotates err, pointing at the migrate command when the schema is missing.
func wrap(op string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: remote schema missing, run `warehouse migrate`: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
