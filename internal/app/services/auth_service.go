package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	pauth "github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/auth"
)

// AuthService handles login and session verification for both roles
type AuthService struct {
	teacherRepo repositories.TeacherRepository
	studentRepo repositories.StudentRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	teacherRepo repositories.TeacherRepository,
	studentRepo repositories.StudentRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// LoginTeacher authenticates a teacher by email and password
func (s *AuthService) LoginTeacher(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	teacher, err := s.teacherRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("email", email).Msg("Teacher login with unknown email")
			return nil, apperrors.ErrLoginFailed
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	if !teacher.HasPassword() || !auth.CheckPassword(teacher.PasswordHash, req.Password) {
		s.logger.Warn().Int64("teacherID", teacher.ID).Msg("Teacher login with wrong password")
		return nil, apperrors.ErrLoginFailed
	}

	return s.issue(teacher.Actor(), teacher)
}

// LoginStudent authenticates a student by email and password. The
// response never carries the password hash.
func (s *AuthService) LoginStudent(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("email", email).Msg("Student login with unknown email")
			return nil, apperrors.ErrLoginFailed
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if !auth.CheckPassword(student.PasswordHash, req.Password) {
		s.logger.Warn().Int64("studentID", student.ID).Msg("Student login with wrong password")
		return nil, apperrors.ErrLoginFailed
	}

	return s.issue(student.Actor(), student)
}

func (s *AuthService) issue(actor models.Actor, user interface{}) (*dto.LoginResponse, error) {
	token, err := s.jwtService.GenerateToken(actor)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().
		Int64("userID", actor.ID).
		Str("role", string(actor.Role)).
		Msg("Login succeeded")

	return &dto.LoginResponse{
		Token:     token.AccessToken,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
		User:      user,
	}, nil
}

// Verify resolves the record behind a session. A token whose account
// was deleted is no longer valid.
func (s *AuthService) Verify(ctx context.Context, actor *models.Actor) (*dto.VerifyResponse, error) {
	if err := pauth.RequireActor(actor); err != nil {
		return nil, err
	}

	var (
		user interface{}
		err  error
	)
	switch actor.Role {
	case models.RoleTeacher:
		user, err = s.teacherRepo.GetByID(ctx, actor.ID)
	case models.RoleStudent:
		user, err = s.studentRepo.GetByID(ctx, actor.ID)
	default:
		return nil, auth.ErrInvalidToken
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("error verifying session: %w", err)
	}

	return &dto.VerifyResponse{Valid: true, User: user}, nil
}
