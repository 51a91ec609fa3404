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
	"github.com/yigit/welearn/internal/pkg/logger"
	"github.com/yigit/welearn/internal/pkg/validation"
)

// PostService defines the interface for post-related operations
type PostService interface {
	CreatePost(ctx context.Context, actor *models.Actor, req *dto.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context) ([]*models.Post, error)
	SearchPosts(ctx context.Context, term string) ([]*models.Post, error)
	ListStudentPosts(ctx context.Context, studentID int64) ([]*models.Post, error)
	UpdatePost(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, actor *models.Actor, id int64) error
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postRepo    repositories.PostRepository
	studentRepo repositories.StudentRepository
	authz       *auth.AuthorizationService
}

// NewPostService creates a new post service instance
func NewPostService(
	postRepo repositories.PostRepository,
	studentRepo repositories.StudentRepository,
	authz *auth.AuthorizationService,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		studentRepo: studentRepo,
		authz:       authz,
	}
}

// resolveAuthorType picks the author type of a new post. An omitted type
// follows the actor's role; an explicit one must match it.
func resolveAuthorType(actor *models.Actor, requested *models.AuthorType) (models.AuthorType, error) {
	role := models.AuthorType(actor.Role)
	if requested == nil || *requested == "" {
		return role, nil
	}
	if !requested.Valid() {
		return "", apperrors.NewValidationError("authorType", "authorType must be one of teacher, student")
	}
	if *requested != role {
		return "", auth.ErrAuthorTypeDenied
	}
	return *requested, nil
}

// CreatePost validates and stores a new post written by actor
func (s *postServiceImpl) CreatePost(ctx context.Context, actor *models.Actor, req *dto.CreatePostRequest) (*models.Post, error) {
	if err := auth.RequireActor(actor); err != nil {
		return nil, err
	}

	authorType, err := resolveAuthorType(actor, req.AuthorType)
	if err != nil {
		return nil, err
	}

	author := req.Author
	if actor.IsStudent() {
		author = actor.Name
	}

	if err := validation.ValidatePost(validation.PostFields{
		Title:   &req.Title,
		Content: &req.Content,
		Author:  &author,
	}, false); err != nil {
		return nil, err
	}

	authorID := actor.ID
	post := &models.Post{
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		Author:     strings.TrimSpace(author),
		AuthorType: authorType,
		AuthorID:   &authorID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	logger.Info().
		Int64("postID", post.ID).
		Str("authorType", string(post.AuthorType)).
		Int64("authorID", authorID).
		Msg("Post created")

	return post, nil
}

// GetPost retrieves a post by ID
func (s *postServiceImpl) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	if id <= 0 {
		return nil, apperrors.ErrPostNotFound
	}
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves every post, newest first
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving posts: %w", err)
	}
	return posts, nil
}

// SearchPosts matches term against title, content and author. A blank
// term lists every post.
func (s *postServiceImpl) SearchPosts(ctx context.Context, term string) ([]*models.Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListPosts(ctx)
	}

	posts, err := s.postRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching posts: %w", err)
	}
	return posts, nil
}

// ListStudentPosts retrieves the posts written by a student
func (s *postServiceImpl) ListStudentPosts(ctx context.Context, studentID int64) ([]*models.Post, error) {
	if studentID <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByAuthor(ctx, models.AuthorStudent, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student posts: %w", err)
	}
	return posts, nil
}

// UpdatePost applies the fields present in req. Students cannot rename
// the author of their posts.
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor *models.Actor, id int64, req *dto.UpdatePostRequest) (*models.Post, error) {
	if err := auth.RequireActor(actor); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ErrPostNotFound
	}

	if _, err := s.authz.ValidatePostOwnership(ctx, actor, id); err != nil {
		return nil, err
	}

	patch := repositories.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}
	if actor.IsStudent() {
		patch.Author = nil
	}

	if err := validation.ValidatePost(validation.PostFields{
		Title:   patch.Title,
		Content: patch.Content,
		Author:  patch.Author,
	}, true); err != nil {
		return nil, err
	}

	patch.Title = trimmed(patch.Title)
	patch.Author = trimmed(patch.Author)

	post, err := s.postRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post the actor is allowed to modify
func (s *postServiceImpl) DeletePost(ctx context.Context, actor *models.Actor, id int64) error {
	if err := auth.RequireActor(actor); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ErrPostNotFound
	}

	if _, err := s.authz.ValidatePostOwnership(ctx, actor, id); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("postID", id).Int64("actorID", actor.ID).Msg("Post deleted")
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
