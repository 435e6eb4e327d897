package sqldb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/nc-news/internal/apperror"
)

// PostgreSQL SQLSTATE codes the store classifies.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNumericValueOutOfRange    = "22003"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgCheckViolation            = "23514"
)

// translateErr classifies a driver error into the apperror taxonomy.
//
// This is the only place engine error codes are inspected. op describes the
// failed operation ("creating comment") and resource/key name the row for
// conflict messages. Unrecognised errors are wrapped and stay Internal.
func translateErr(op, resource, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource, key)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation, pgNumericValueOutOfRange, pgNotNullViolation, pgCheckViolation:
			return apperror.ValidationFailed(pgErr.ColumnName, "Bad request")
		case pgForeignKeyViolation:
			return apperror.NotFound("referenced resource", "for "+resource)
		case pgUniqueViolation:
			return apperror.Conflict(resource, key)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return apperror.NotFound("referenced resource", "for "+resource)
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
			return apperror.ValidationFailed("", "Bad request")
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperror.Conflict(resource, key)
		}
	}

	return fmt.Errorf("sqldb: %s: %w", op, err)
}
