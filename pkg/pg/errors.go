package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConnect               = errors.New("pg: failed to open connection")
	ErrEmptyConnectionString = errors.New("pg: empty connection string, set PG_CONN_URL")
	ErrHealthcheckFailed     = errors.New("pg: healthcheck failed")
	ErrParseConfig           = errors.New("pg: failed to parse config")
	ErrMigrate               = errors.New("pg: failed to apply migrations")
)

// IsNotFoundError reports whether err is pgx.ErrNoRows.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError reports a unique constraint violation (SQLSTATE 23505).
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
