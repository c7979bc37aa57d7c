package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode código SQLSTATE de violación de constraint único.
const uniqueViolationCode = "23505"

// isUniqueViolation verifica si un error del driver es una violación de
// constraint único. Los repositorios lo traducen a domain.ErrDuplicate
// o domain.ErrEmailAlreadyExists según el recurso.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
