// Package pgerrs classifies storage errors independently of the SQL driver.
package pgerrs

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UniqueViolationCode is the Postgres SQLSTATE for unique_violation.
const UniqueViolationCode = "23505"

// IsUniqueViolation reports whether err was caused by a unique index. It
// recognizes errors translated by gorm, raw pgconn errors and the message
// forms used by Postgres and SQLite. When constraintName is given, the error
// must also mention it.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	unique := errors.Is(err, gorm.ErrDuplicatedKey)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		unique = unique || pgErr.Code == UniqueViolationCode
		if constraintName != "" && pgErr.ConstraintName != "" {
			return unique && pgErr.ConstraintName == constraintName
		}
	}

	msg := err.Error()
	unique = unique ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")

	if constraintName != "" {
		return unique && strings.Contains(msg, constraintName)
	}
	return unique
}
