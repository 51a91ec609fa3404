package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/dberrors"
	"github.com/yigit/welearn/internal/pkg/logger"
)

const (
	studentsEmailKey     = "students_email_key"
	studentsStudentIDKey = "students_student_id_key"
)

var studentColumns = []string{"id", "name", "email", "password_hash", "student_id", "course", "created_at", "updated_at"}

// PostgresStudentRepository handles student database operations
type PostgresStudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new PostgresStudentRepository
func NewStudentRepository(db DBTX) *PostgresStudentRepository {
	return &PostgresStudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStudent(row scanner) (*models.Student, error) {
	s := &models.Student{}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.StudentID, &s.Course, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// studentUniqueViolation maps a unique index failure to the matching conflict.
func studentUniqueViolation(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, studentsEmailKey):
		return apperrors.ErrStudentEmailExists
	case dberrors.IsDuplicateConstraintError(err, studentsStudentIDKey):
		return apperrors.ErrStudentCodeExists
	}
	return nil
}

// Create inserts a student
func (r *PostgresStudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "email", "password_hash", "student_id", "course").
		Values(student.Name, student.Email, student.PasswordHash, student.StudentID, nullIfEmpty(student.Course)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		if conflict := studentUniqueViolation(err); conflict != nil {
			return conflict
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

func (r *PostgresStudentRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student by ID
func (r *PostgresStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a student by email
func (r *PostgresStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetAll retrieves all students ordered by name
func (r *PostgresStudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all students SQL")
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update applies patch and returns the stored student
func (r *PostgresStudentRepository) Update(ctx context.Context, id int64, patch StudentPatch) (*models.Student, error) {
	q := r.sb.Update("students")
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		q = q.Set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		q = q.Set("password_hash", *patch.PasswordHash)
	}
	if patch.StudentID != nil {
		q = q.Set("student_id", *patch.StudentID)
	}
	if patch.Course != nil {
		q = q.Set("course", nullIfEmpty(patch.Course))
	}

	sql, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(studentColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		if conflict := studentUniqueViolation(err); conflict != nil {
			return nil, conflict
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// Delete deletes a student by ID. Their posts are kept.
func (r *PostgresStudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
