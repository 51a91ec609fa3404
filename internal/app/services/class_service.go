package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/logger"
)

// ClassService defines the interface for class-related operations
type ClassService interface {
	CreateClass(ctx context.Context, actor *models.Actor, req *dto.CreateClassRequest) (*models.Class, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	ListClasses(ctx context.Context) ([]*models.Class, error)
	UpdateClass(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateClassRequest) (*models.Class, error)
	DeleteClass(ctx context.Context, actor *models.Actor, id int64) error
}

// classServiceImpl implements the ClassService interface
type classServiceImpl struct {
	classRepo      repositories.ClassRepository
	disciplineRepo repositories.DisciplineRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo repositories.ClassRepository, disciplineRepo repositories.DisciplineRepository) ClassService {
	return &classServiceImpl{
		classRepo:      classRepo,
		disciplineRepo: disciplineRepo,
	}
}

// CreateClass stores a class of an existing discipline
func (s *classServiceImpl) CreateClass(ctx context.Context, actor *models.Actor, req *dto.CreateClassRequest) (*models.Class, error) {
	if err := auth.RequireTeacher(actor); err != nil {
		return nil, err
	}
	if req.StartDate == nil || req.StartDate.IsZero() {
		return nil, apperrors.ErrClassStartDateNeeded
	}

	class := &models.Class{
		Name:         strings.TrimSpace(req.Name),
		DisciplineID: req.DisciplineID,
		Description:  req.Description,
		Image:        req.Image,
		StartDate:    *req.StartDate,
		EndDate:      req.EndDate,
	}
	if class.EndDate != nil && class.EndDate.IsZero() {
		class.EndDate = nil
	}
	if class.EndsBeforeStart() {
		return nil, apperrors.ErrClassEndBeforeStart
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	logger.Info().Int64("classID", class.ID).Int64("disciplineID", class.DisciplineID).Msg("Class created")
	return class, nil
}

// GetClass retrieves a class with its discipline
func (s *classServiceImpl) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	if id <= 0 {
		return nil, apperrors.ErrClassNotFound
	}

	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	discipline, err := s.disciplineRepo.GetByID(ctx, class.DisciplineID)
	switch {
	case err == nil:
		class.Discipline = discipline
	case errors.Is(err, apperrors.ErrResourceNotFound):
		logger.Warn().Int64("classID", id).Int64("disciplineID", class.DisciplineID).Msg("Class discipline not found")
	default:
		return nil, fmt.Errorf("error retrieving class discipline: %w", err)
	}

	return class, nil
}

// ListClasses retrieves all classes
func (s *classServiceImpl) ListClasses(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classes: %w", err)
	}
	return classes, nil
}

// UpdateClass applies the fields present in req. The date range is
// checked against the stored dates it does not replace.
func (s *classServiceImpl) UpdateClass(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	if err := auth.RequireTeacher(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ErrClassNotFound
	}

	existing, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil && req.StartDate.IsZero() {
		return nil, apperrors.ErrClassStartDateNeeded
	}

	merged := *existing
	if req.StartDate != nil {
		merged.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		merged.EndDate = nil
		if !req.EndDate.IsZero() {
			merged.EndDate = req.EndDate
		}
	}
	if merged.EndsBeforeStart() {
		return nil, apperrors.ErrClassEndBeforeStart
	}

	patch := repositories.ClassPatch{
		Name:         trimmed(req.Name),
		DisciplineID: req.DisciplineID,
		Description:  req.Description,
		Image:        req.Image,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}

	return s.classRepo.Update(ctx, id, patch)
}

// DeleteClass removes a class
func (s *classServiceImpl) DeleteClass(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.RequireTeacher(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ErrClassNotFound
	}

	if err := s.classRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("classID", id).Msg("Class deleted")
	return nil
}
