package auth

import (
	"context"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/logger"
)

// Authorization errors
var (
	ErrNotAuthenticated = &apperrors.CustomError{Err: apperrors.ErrUnauthorized, Message: "authentication required", Code: "AUTH_008"}
	ErrNotTeacher       = &apperrors.CustomError{Err: apperrors.ErrPermissionDenied, Message: "only teachers can perform this action", Code: "AUTH_009"}
	ErrNotPostAuthor    = &apperrors.CustomError{Err: apperrors.ErrPermissionDenied, Message: "you can only modify your own posts", Code: "AUTH_009"}
	ErrNotAccountOwner  = &apperrors.CustomError{Err: apperrors.ErrPermissionDenied, Message: "you can only manage your own account", Code: "AUTH_009"}
	ErrAuthorTypeDenied = &apperrors.CustomError{Err: apperrors.ErrPermissionDenied, Message: "authorType must match your role", Field: "authorType", Code: "AUTH_009"}
)

// CanModifyPost reports whether actor may edit or delete post. Teachers
// may modify any post. Students may modify student posts they wrote,
// matched by id; the display name is only compared for legacy posts
// that carry no author id.
func CanModifyPost(actor *models.Actor, post *models.Post) bool {
	if actor == nil || post == nil {
		return false
	}

	switch actor.Role {
	case models.RoleTeacher:
		return true
	case models.RoleStudent:
		if post.AuthorType != models.AuthorStudent {
			return false
		}
		if post.AuthorID != nil {
			return *post.AuthorID == actor.ID
		}
		return post.Author != "" && post.Author == actor.Name
	default:
		return false
	}
}

// CanManageStudent reports whether actor may update or delete the student record.
func CanManageStudent(actor *models.Actor, studentID int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsTeacher() || (actor.IsStudent() && actor.ID == studentID)
}

// RequireActor fails when the request carries no identity.
func RequireActor(actor *models.Actor) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireTeacher fails unless actor is a teacher.
func RequireTeacher(actor *models.Actor) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	if !actor.IsTeacher() {
		return ErrNotTeacher
	}
	return nil
}

// AuthorizationService combines the policy with lookups so that a missing
// record is reported before a permission failure.
type AuthorizationService struct {
	posts    repositories.PostRepository
	students repositories.StudentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(posts repositories.PostRepository, students repositories.StudentRepository) *AuthorizationService {
	return &AuthorizationService{
		posts:    posts,
		students: students,
	}
}

// ValidatePostOwnership loads the post and checks the actor may modify it.
func (s *AuthorizationService) ValidatePostOwnership(ctx context.Context, actor *models.Actor, postID int64) (*models.Post, error) {
	if err := RequireActor(actor); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !CanModifyPost(actor, post) {
		logger.Warn().
			Int64("postID", postID).
			Int64("actorID", actor.ID).
			Str("role", string(actor.Role)).
			Msg("Post modification denied")
		return nil, ErrNotPostAuthor
	}

	return post, nil
}

// ValidateStudentAccess loads the student and checks the actor may manage it.
func (s *AuthorizationService) ValidateStudentAccess(ctx context.Context, actor *models.Actor, studentID int64) (*models.Student, error) {
	if err := RequireActor(actor); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if !CanManageStudent(actor, studentID) {
		return nil, ErrNotAccountOwner
	}

	return student, nil
}
