package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassification(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeExclusionViolation, ConstraintName: "room_overlap"})
	unique := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "dup"}
	check := &pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "within_capacity"}
	fk := &pgconn.PgError{Code: CodeForeignKeyMissing, ConstraintName: "course_fk"}

	if !IsExclusionConstraintError(exclusion, "room_overlap") {
		t.Fatalf("wrapped exclusion violation not detected")
	}
	if IsExclusionConstraintError(exclusion, "instructor_overlap") {
		t.Fatalf("constraint name must match")
	}
	if !IsDuplicateConstraintError(unique, "dup") || IsDuplicateConstraintError(exclusion, "room_overlap") {
		t.Fatalf("unexpected unique classification")
	}
	if !IsCheckConstraintError(check, "within_capacity") {
		t.Fatalf("check violation not detected")
	}
	if !IsForeignKeyError(fk) || !IsForeignKeyConstraintError(fk, "course_fk") || IsForeignKeyConstraintError(fk, "other") {
		t.Fatalf("unexpected foreign key classification")
	}
	if IsForeignKeyError(errors.New("plain")) {
		t.Fatalf("plain errors are not database errors")
	}
}
