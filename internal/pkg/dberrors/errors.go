package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories care about
const (
	CodeUniqueViolation    = "23505"
	CodeExclusionViolation = "23P01"
	CodeCheckViolation     = "23514"
	CodeForeignKeyMissing  = "23503"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsExclusionConstraintError checks for an exclusion constraint violation (overlapping
// ranges) on the named constraint.
func IsExclusionConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeExclusionViolation && pgErr.ConstraintName == constraintName
}

// IsCheckConstraintError checks for a CHECK violation on the named constraint.
func IsCheckConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeCheckViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyError reports a reference to a missing row.
func IsForeignKeyError(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeForeignKeyMissing
}

// IsForeignKeyConstraintError reports a missing referenced row for the named constraint.
func IsForeignKeyConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == CodeForeignKeyMissing && pgErr.ConstraintName == constraintName
}
