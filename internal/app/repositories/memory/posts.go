package memory

import (
	"context"
	"strings"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

type postRepository struct {
	db *DB
}

func clonePost(p models.Post) *models.Post {
	p.AuthorID = copyInt64(p.AuthorID)
	return &p
}

func newestFirst(a, b *models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (r *postRepository) Create(_ context.Context, post *models.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if post.AuthorType == "" {
		post.AuthorType = models.AuthorTeacher
	}
	post.ID = r.db.nextID("posts")
	post.Timestamps = stamp(r.db.now())
	r.db.posts[post.ID] = *clonePost(*post)
	return nil
}

func (r *postRepository) GetByID(_ context.Context, id int64) (*models.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *postRepository) filter(keep func(*models.Post) bool) []*models.Post {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	posts := []*models.Post{}
	for _, p := range sortedValues(r.db.posts, newestFirst) {
		if keep(p) {
			posts = append(posts, clonePost(*p))
		}
	}
	return posts
}

func (r *postRepository) GetAll(_ context.Context) ([]*models.Post, error) {
	return r.filter(func(*models.Post) bool { return true }), nil
}

func (r *postRepository) Search(_ context.Context, term string) ([]*models.Post, error) {
	needle := strings.ToLower(term)
	return r.filter(func(p *models.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) ||
			strings.Contains(strings.ToLower(p.Author), needle)
	}), nil
}

func (r *postRepository) GetByAuthor(_ context.Context, authorType models.AuthorType, authorID int64) ([]*models.Post, error) {
	return r.filter(func(p *models.Post) bool {
		return p.AuthorType == authorType && p.AuthorID != nil && *p.AuthorID == authorID
	}), nil
}

func (r *postRepository) Update(_ context.Context, id int64, patch repositories.PostPatch) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	p.UpdatedAt = r.db.now()
	r.db.posts[id] = p
	return clonePost(p), nil
}

func (r *postRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(r.db.posts, id)
	return nil
}
