package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrReferenced is returned when deleting a row that habits still reference.
var ErrReferenced = errors.New("row is referenced by existing habits")

const fkViolationCode = "23503"

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == fkViolationCode
}
