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

// DisciplineService defines the interface for discipline-related operations
type DisciplineService interface {
	CreateDiscipline(ctx context.Context, actor *models.Actor, req *dto.CreateDisciplineRequest) (*models.Discipline, error)
	GetDiscipline(ctx context.Context, id int64) (*models.Discipline, error)
	ListDisciplines(ctx context.Context) ([]*models.Discipline, error)
	UpdateDiscipline(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateDisciplineRequest) (*models.Discipline, error)
	DeleteDiscipline(ctx context.Context, actor *models.Actor, id int64) error
}

// disciplineServiceImpl implements the DisciplineService interface
type disciplineServiceImpl struct {
	disciplineRepo repositories.DisciplineRepository
	teacherRepo    repositories.TeacherRepository
}

// NewDisciplineService creates a new discipline service instance
func NewDisciplineService(disciplineRepo repositories.DisciplineRepository, teacherRepo repositories.TeacherRepository) DisciplineService {
	return &disciplineServiceImpl{
		disciplineRepo: disciplineRepo,
		teacherRepo:    teacherRepo,
	}
}

// CreateDiscipline stores a discipline. When no teacher is named the
// discipline belongs to the actor.
func (s *disciplineServiceImpl) CreateDiscipline(ctx context.Context, actor *models.Actor, req *dto.CreateDisciplineRequest) (*models.Discipline, error) {
	if err := auth.RequireTeacher(actor); err != nil {
		return nil, err
	}

	teacherID := actor.ID
	if req.TeacherID != nil {
		teacherID = *req.TeacherID
	}

	discipline := &models.Discipline{
		Name:        strings.TrimSpace(req.Name),
		TeacherID:   teacherID,
		Description: req.Description,
	}

	if err := s.disciplineRepo.Create(ctx, discipline); err != nil {
		return nil, err
	}

	logger.Info().Int64("disciplineID", discipline.ID).Int64("teacherID", teacherID).Msg("Discipline created")
	return discipline, nil
}

// GetDiscipline retrieves a discipline with its teacher
func (s *disciplineServiceImpl) GetDiscipline(ctx context.Context, id int64) (*models.Discipline, error) {
	if id <= 0 {
		return nil, apperrors.ErrDisciplineNotFound
	}

	discipline, err := s.disciplineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, discipline.TeacherID)
	switch {
	case err == nil:
		discipline.Teacher = teacher
	case errors.Is(err, apperrors.ErrResourceNotFound):
		logger.Warn().Int64("disciplineID", id).Int64("teacherID", discipline.TeacherID).Msg("Discipline teacher not found")
	default:
		return nil, fmt.Errorf("error retrieving discipline teacher: %w", err)
	}

	return discipline, nil
}

// ListDisciplines retrieves all disciplines
func (s *disciplineServiceImpl) ListDisciplines(ctx context.Context) ([]*models.Discipline, error) {
	disciplines, err := s.disciplineRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving disciplines: %w", err)
	}
	return disciplines, nil
}

// UpdateDiscipline applies the fields present in req
func (s *disciplineServiceImpl) UpdateDiscipline(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateDisciplineRequest) (*models.Discipline, error) {
	if err := auth.RequireTeacher(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ErrDisciplineNotFound
	}

	return s.disciplineRepo.Update(ctx, id, repositories.DisciplinePatch{
		Name:        trimmed(req.Name),
		TeacherID:   req.TeacherID,
		Description: req.Description,
	})
}

// DeleteDiscipline removes a discipline that has no classes
func (s *disciplineServiceImpl) DeleteDiscipline(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.RequireTeacher(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ErrDisciplineNotFound
	}

	if err := s.disciplineRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("disciplineID", id).Msg("Discipline deleted")
	return nil
}
