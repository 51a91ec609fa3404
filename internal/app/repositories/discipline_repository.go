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

const classesDisciplineIDFkey = "classes_discipline_id_fkey"

var disciplineColumns = []string{"id", "name", "teacher_id", "description", "created_at", "updated_at"}

// PostgresDisciplineRepository handles discipline database operations
type PostgresDisciplineRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewDisciplineRepository creates a new PostgresDisciplineRepository
func NewDisciplineRepository(db DBTX) *PostgresDisciplineRepository {
	return &PostgresDisciplineRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanDiscipline(row scanner) (*models.Discipline, error) {
	d := &models.Discipline{}
	if err := row.Scan(&d.ID, &d.Name, &d.TeacherID, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts a discipline
func (r *PostgresDisciplineRepository) Create(ctx context.Context, discipline *models.Discipline) error {
	sql, args, err := r.sb.Insert("disciplines").
		Columns("name", "teacher_id", "description").
		Values(discipline.Name, discipline.TeacherID, nullIfEmpty(discipline.Description)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create discipline SQL")
		return fmt.Errorf("failed to build create discipline query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&discipline.ID, &discipline.CreatedAt, &discipline.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, disciplinesTeacherIDFkey) {
			return apperrors.ErrUnknownTeacher
		}
		logger.Error().Err(err).Msg("Error executing create discipline query")
		return fmt.Errorf("error creating discipline: %w", err)
	}

	return nil
}

// GetByID retrieves a discipline by ID
func (r *PostgresDisciplineRepository) GetByID(ctx context.Context, id int64) (*models.Discipline, error) {
	sql, args, err := r.sb.Select(disciplineColumns...).
		From("disciplines").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get discipline by ID SQL")
		return nil, fmt.Errorf("failed to build get discipline query: %w", err)
	}

	discipline, err := scanDiscipline(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDisciplineNotFound
		}
		logger.Error().Err(err).Int64("disciplineID", id).Msg("Error scanning discipline row")
		return nil, fmt.Errorf("error getting discipline by ID: %w", err)
	}

	return discipline, nil
}

// GetAll retrieves all disciplines ordered by name
func (r *PostgresDisciplineRepository) GetAll(ctx context.Context) ([]*models.Discipline, error) {
	sql, args, err := r.sb.Select(disciplineColumns...).
		From("disciplines").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all disciplines SQL")
		return nil, fmt.Errorf("failed to build get all disciplines query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all disciplines query")
		return nil, fmt.Errorf("error querying disciplines: %w", err)
	}
	defer rows.Close()

	disciplines := []*models.Discipline{}
	for rows.Next() {
		discipline, err := scanDiscipline(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning discipline row: %w", err)
		}
		disciplines = append(disciplines, discipline)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discipline rows: %w", err)
	}

	return disciplines, nil
}

// Update applies patch and returns the stored discipline
func (r *PostgresDisciplineRepository) Update(ctx context.Context, id int64, patch DisciplinePatch) (*models.Discipline, error) {
	q := r.sb.Update("disciplines")
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.TeacherID != nil {
		q = q.Set("teacher_id", *patch.TeacherID)
	}
	if patch.Description != nil {
		q = q.Set("description", nullIfEmpty(patch.Description))
	}

	sql, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(disciplineColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update discipline SQL")
		return nil, fmt.Errorf("failed to build update discipline query: %w", err)
	}

	discipline, err := scanDiscipline(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.ErrDisciplineNotFound
		case dberrors.IsForeignKeyError(err, disciplinesTeacherIDFkey):
			return nil, apperrors.ErrUnknownTeacher
		}
		logger.Error().Err(err).Int64("disciplineID", id).Msg("Error executing update discipline query")
		return nil, fmt.Errorf("error updating discipline: %w", err)
	}

	return discipline, nil
}

// Delete deletes a discipline that has no classes
func (r *PostgresDisciplineRepository) Delete(ctx context.Context, id int64) error {
	var hasClasses bool
	checkSQL, checkArgs, err := r.sb.Select("1").
		From("classes").
		Where(squirrel.Eq{"discipline_id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building check classes SQL")
		return fmt.Errorf("failed to build check classes query: %w", err)
	}

	if err := r.db.QueryRow(ctx, checkSQL, checkArgs...).Scan(&hasClasses); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("disciplineID", id).Msg("Error checking associated classes")
		return fmt.Errorf("error checking associated classes: %w", err)
	}

	if hasClasses {
		return apperrors.ErrDisciplineHasClasses
	}

	sql, args, err := r.sb.Delete("disciplines").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete discipline SQL")
		return fmt.Errorf("failed to build delete discipline query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err, classesDisciplineIDFkey) {
			return apperrors.ErrDisciplineHasClasses
		}
		logger.Error().Err(err).Int64("disciplineID", id).Msg("Error executing delete discipline query")
		return fmt.Errorf("error deleting discipline: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDisciplineNotFound
	}

	return nil
}
