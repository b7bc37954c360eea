package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error de PostgreSQL que los repositorios traducen a errores
// de dominio.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	if pgErrorCode(err) == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), pgUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de clave
// foránea (ej. borrar una categoría que todavía referencian productos).
func isForeignKeyViolation(err error) bool {
	if pgErrorCode(err) == pgForeignKeyViolation {
		return true
	}
	return strings.Contains(err.Error(), pgForeignKeyViolation)
}
