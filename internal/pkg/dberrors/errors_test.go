package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "students_email_key"})
	fk := &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "classes_discipline_id_fkey"}

	assert.True(t, IsDuplicateConstraintError(unique, "students_email_key"))
	assert.False(t, IsDuplicateConstraintError(unique, "students_student_id_key"))
	assert.False(t, IsForeignKeyError(unique, "students_email_key"))

	assert.True(t, IsForeignKeyError(fk, "classes_discipline_id_fkey"))
	assert.False(t, IsDuplicateConstraintError(fk, "classes_discipline_id_fkey"))

	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "students_email_key"))
}
