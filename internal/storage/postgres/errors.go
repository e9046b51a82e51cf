package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// ValidID reports whether id can be used against a UUID column. Ids that fail
// this check can never match a row.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
