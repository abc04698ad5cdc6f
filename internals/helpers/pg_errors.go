// file: internals/helpers/pg_errors.go
package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation mendeteksi pelanggaran unique constraint.
// Jalur utama: SQLSTATE 23505 dari pgconn. Fallback substring untuk
// driver lain (mis. sqlite saat test).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
