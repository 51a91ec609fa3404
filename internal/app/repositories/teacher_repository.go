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
	teachersEmailKey         = "teachers_email_key"
	disciplinesTeacherIDFkey = "disciplines_teacher_id_fkey"
)

var teacherColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

// PostgresTeacherRepository handles teacher database operations
type PostgresTeacherRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new PostgresTeacherRepository
func NewTeacherRepository(db DBTX) *PostgresTeacherRepository {
	return &PostgresTeacherRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanTeacher(row scanner) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	var hash *string
	if err := row.Scan(&teacher.ID, &teacher.Name, &teacher.Email, &hash, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		return nil, err
	}
	if hash != nil {
		teacher.PasswordHash = *hash
	}
	return teacher, nil
}

// Create inserts a teacher
func (r *PostgresTeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("name", "email", "password_hash").
		Values(teacher.Name, teacher.Email, nullIfEmpty(&teacher.PasswordHash)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, teachersEmailKey) {
			return apperrors.ErrTeacherEmailExists
		}
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

func (r *PostgresTeacherRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}
	return teacher, nil
}

// GetByID retrieves a teacher by ID
func (r *PostgresTeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a teacher by email
func (r *PostgresTeacherRepository) GetByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetAll retrieves all teachers ordered by name
func (r *PostgresTeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all teachers SQL")
		return nil, fmt.Errorf("failed to build get all teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all teachers query")
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}

	return teachers, nil
}

// Update applies patch and returns the stored teacher
func (r *PostgresTeacherRepository) Update(ctx context.Context, id int64, patch TeacherPatch) (*models.Teacher, error) {
	q := r.sb.Update("teachers")
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		q = q.Set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		q = q.Set("password_hash", nullIfEmpty(patch.PasswordHash))
	}

	sql, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(teacherColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update teacher SQL")
		return nil, fmt.Errorf("failed to build update teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.ErrTeacherNotFound
		case dberrors.IsDuplicateConstraintError(err, teachersEmailKey):
			return nil, apperrors.ErrTeacherEmailExists
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error executing update teacher query")
		return nil, fmt.Errorf("error updating teacher: %w", err)
	}

	return teacher, nil
}

// Delete deletes a teacher that owns no disciplines
func (r *PostgresTeacherRepository) Delete(ctx context.Context, id int64) error {
	var hasDisciplines bool
	checkSQL, checkArgs, err := r.sb.Select("1").
		From("disciplines").
		Where(squirrel.Eq{"teacher_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building check disciplines SQL")
		return fmt.Errorf("failed to build check disciplines query: %w", err)
	}

	if err := r.db.QueryRow(ctx, checkSQL, checkArgs...).Scan(&hasDisciplines); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error checking associated disciplines")
		return fmt.Errorf("error checking associated disciplines: %w", err)
	}

	if hasDisciplines {
		return apperrors.ErrTeacherHasDisciplines
	}

	sql, args, err := r.sb.Delete("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete teacher SQL")
		return fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		// a discipline inserted after the check
		if dberrors.IsForeignKeyError(err, disciplinesTeacherIDFkey) {
			return apperrors.ErrTeacherHasDisciplines
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error executing delete teacher query")
		return fmt.Errorf("error deleting teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}
