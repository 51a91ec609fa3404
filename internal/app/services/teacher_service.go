package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	pkgauth "github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/logger"
)

// TeacherService defines the interface for teacher-related operations
type TeacherService interface {
	CreateTeacher(ctx context.Context, actor *models.Actor, req *dto.CreateTeacherRequest) (*models.Teacher, error)
	GetTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	ListTeachers(ctx context.Context) ([]*models.Teacher, error)
	UpdateTeacher(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, actor *models.Actor, id int64) error
}

// teacherServiceImpl implements the TeacherService interface
type teacherServiceImpl struct {
	teacherRepo repositories.TeacherRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo repositories.TeacherRepository) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashOptional hashes password when one was supplied
func hashOptional(password *string) (*string, error) {
	if password == nil {
		return nil, nil
	}
	hash, err := pkgauth.HashPassword(*password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	return &hash, nil
}

// CreateTeacher registers a teacher. The password is optional; a teacher
// without one cannot log in.
func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, actor *models.Actor, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := auth.RequireTeacher(actor); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		Name:  strings.TrimSpace(req.Name),
		Email: normalizeEmail(req.Email),
	}
	if req.Password != "" {
		hash, err := pkgauth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		teacher.PasswordHash = hash
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	logger.Info().Int64("teacherID", teacher.ID).Int64("createdBy", actor.ID).Msg("Teacher created")
	return teacher, nil
}

// GetTeacher retrieves a teacher by ID
func (s *teacherServiceImpl) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	if id <= 0 {
		return nil, apperrors.ErrTeacherNotFound
	}
	return s.teacherRepo.GetByID(ctx, id)
}

// ListTeachers retrieves all teachers
func (s *teacherServiceImpl) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

// UpdateTeacher applies the fields present in req
func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	if err := auth.RequireTeacher(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ErrTeacherNotFound
	}

	hash, err := hashOptional(req.Password)
	if err != nil {
		return nil, err
	}

	patch := repositories.TeacherPatch{
		Name:         trimmed(req.Name),
		PasswordHash: hash,
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		patch.Email = &email
	}

	return s.teacherRepo.Update(ctx, id, patch)
}

// DeleteTeacher removes a teacher that owns no disciplines
func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.RequireTeacher(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ErrTeacherNotFound
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("teacherID", id).Int64("deletedBy", actor.ID).Msg("Teacher deleted")
	return nil
}
