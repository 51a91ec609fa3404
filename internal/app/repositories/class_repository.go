package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/dberrors"
	"github.com/yigit/welearn/internal/pkg/logger"
)

var classColumns = []string{"id", "name", "discipline_id", "description", "image", "start_date", "end_date", "created_at", "updated_at"}

// PostgresClassRepository handles class database operations
type PostgresClassRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new PostgresClassRepository
func NewClassRepository(db DBTX) *PostgresClassRepository {
	return &PostgresClassRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanClass(row scanner) (*models.Class, error) {
	c := &models.Class{}
	var (
		start time.Time
		end   *time.Time
	)
	if err := row.Scan(&c.ID, &c.Name, &c.DisciplineID, &c.Description, &c.Image, &start, &end, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.StartDate = models.NewDate(start)
	if end != nil {
		d := models.NewDate(*end)
		c.EndDate = &d
	}
	return c, nil
}

func dateArg(d *models.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}

func clearableDate(d *models.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	return &d.Time
}

func imageArg(image []byte) []byte {
	if len(image) == 0 {
		return nil
	}
	return image
}

// Create inserts a class
func (r *PostgresClassRepository) Create(ctx context.Context, class *models.Class) error {
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "discipline_id", "description", "image", "start_date", "end_date").
		Values(class.Name, class.DisciplineID, nullIfEmpty(class.Description), imageArg(class.Image),
			class.StartDate.Time, dateArg(class.EndDate)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, classesDisciplineIDFkey) {
			return apperrors.ErrUnknownDiscipline
		}
		logger.Error().Err(err).Msg("Error executing create class query")
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *PostgresClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get class by ID SQL")
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, fmt.Errorf("error getting class by ID: %w", err)
	}

	return class, nil
}

// GetAll retrieves all classes, earliest start first
func (r *PostgresClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).
		From("classes").
		OrderBy("start_date ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all classes SQL")
		return nil, fmt.Errorf("failed to build get all classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all classes query")
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class rows: %w", err)
	}

	return classes, nil
}

// Update applies patch and returns the stored class
func (r *PostgresClassRepository) Update(ctx context.Context, id int64, patch ClassPatch) (*models.Class, error) {
	q := r.sb.Update("classes")
	if patch.Name != nil {
		q = q.Set("name", *patch.Name)
	}
	if patch.DisciplineID != nil {
		q = q.Set("discipline_id", *patch.DisciplineID)
	}
	if patch.Description != nil {
		q = q.Set("description", nullIfEmpty(patch.Description))
	}
	if patch.Image != nil {
		q = q.Set("image", imageArg(*patch.Image))
	}
	if patch.StartDate != nil {
		q = q.Set("start_date", patch.StartDate.Time)
	}
	if patch.EndDate != nil {
		q = q.Set("end_date", clearableDate(patch.EndDate))
	}

	sql, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(classColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update class SQL")
		return nil, fmt.Errorf("failed to build update class query: %w", err)
	}

	class, err := scanClass(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.ErrClassNotFound
		case dberrors.IsForeignKeyError(err, classesDisciplineIDFkey):
			return nil, apperrors.ErrUnknownDiscipline
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing update class query")
		return nil, fmt.Errorf("error updating class: %w", err)
	}

	return class, nil
}

// Delete deletes a class by ID
func (r *PostgresClassRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete class SQL")
		return fmt.Errorf("failed to build delete class query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error executing delete class query")
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
