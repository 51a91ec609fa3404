package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/logger"
)

var postColumns = []string{"id", "title", "content", "author", "author_type", "author_id", "created_at", "updated_at"}

// PostgresPostRepository handles post database operations
type PostgresPostRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostgresPostRepository
func NewPostRepository(db DBTX) *PostgresPostRepository {
	return &PostgresPostRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanPost(row scanner) (*models.Post, error) {
	post := &models.Post{}
	var authorType string
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Author, &authorType, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	post.AuthorType = models.AuthorType(authorType)
	return post, nil
}

// Create inserts a post and fills in its id and timestamps
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.AuthorType == "" {
		post.AuthorType = models.AuthorTeacher
	}

	sql, args, err := r.sb.Insert("posts").
		Columns("title", "content", "author", "author_type", "author_id").
		Values(post.Title, post.Content, post.Author, string(post.AuthorType), post.AuthorID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create post SQL")
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create post query")
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get post by ID SQL")
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}

	return post, nil
}

// GetAll retrieves every post, newest first
func (r *PostgresPostRepository) GetAll(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, r.sb.Select(postColumns...).From("posts"))
}

// Search returns posts whose title, content or author contains term,
// ignoring case.
func (r *PostgresPostRepository) Search(ctx context.Context, term string) ([]*models.Post, error) {
	pattern := containsPattern(term)
	return r.list(ctx, r.sb.Select(postColumns...).
		From("posts").
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
			squirrel.ILike{"author": pattern},
		}))
}

// GetByAuthor returns the posts written by one teacher or student
func (r *PostgresPostRepository) GetByAuthor(ctx context.Context, authorType models.AuthorType, authorID int64) ([]*models.Post, error) {
	return r.list(ctx, r.sb.Select(postColumns...).
		From("posts").
		Where(squirrel.Eq{"author_type": string(authorType), "author_id": authorID}))
}

func (r *PostgresPostRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Post, error) {
	sql, args, err := q.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list posts query")
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning post row during list")
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating post rows")
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// Update applies patch and returns the stored post
func (r *PostgresPostRepository) Update(ctx context.Context, id int64, patch PostPatch) (*models.Post, error) {
	q := r.sb.Update("posts")
	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		q = q.Set("content", *patch.Content)
	}
	if patch.Author != nil {
		q = q.Set("author", *patch.Author)
	}

	sql, args, err := q.Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(postColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update post SQL")
		return nil, fmt.Errorf("failed to build update post query: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing update post query")
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	return post, nil
}

// Delete deletes a post by ID
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete post SQL")
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}
