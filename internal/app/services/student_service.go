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

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, actor *models.Actor, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	authz       *auth.AuthorizationService
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository, authz *auth.AuthorizationService) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		authz:       authz,
	}
}

// CreateStudent registers a student. Registration is open.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		StudentID:    strings.TrimSpace(req.StudentID),
		Course:       trimmed(req.Course),
	}
	if student.Course != nil && *student.Course == "" {
		student.Course = nil
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", student.ID).Str("code", student.StudentID).Msg("Student registered")
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents retrieves all students
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// UpdateStudent applies the fields present in req. Students may only
// update their own record.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if err := auth.RequireActor(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}

	if _, err := s.authz.ValidateStudentAccess(ctx, actor, id); err != nil {
		return nil, err
	}

	hash, err := hashOptional(req.Password)
	if err != nil {
		return nil, err
	}

	patch := repositories.StudentPatch{
		Name:         trimmed(req.Name),
		PasswordHash: hash,
		StudentID:    trimmed(req.StudentID),
		Course:       trimmed(req.Course),
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		patch.Email = &email
	}

	return s.studentRepo.Update(ctx, id, patch)
}

// DeleteStudent removes a student record. Posts written by the student
// are kept.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.RequireActor(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ErrStudentNotFound
	}

	if _, err := s.authz.ValidateStudentAccess(ctx, actor, id); err != nil {
		return err
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("studentID", id).Int64("deletedBy", actor.ID).Msg("Student deleted")
	return nil
}
