package poststore

import (
	"context"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
)

// PostAPI is the remote side of the store. *apiclient.Client implements it.
type PostAPI interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, req dto.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// StudentPostAPI lists the posts of one student.
type StudentPostAPI interface {
	StudentPosts(ctx context.Context, studentID int64) ([]models.Post, error)
}

// Load fetches every post into the store.
func Load(ctx context.Context, store *Store, api PostAPI) error {
	store.Dispatch(SetLoading{Loading: true})
	posts, err := api.ListPosts(ctx)
	if err != nil {
		store.Dispatch(SetError{Err: err})
		return err
	}
	store.Dispatch(SetPosts{Posts: posts})
	return nil
}

// Open fetches one post and makes it current.
func Open(ctx context.Context, store *Store, api PostAPI, id int64) (*models.Post, error) {
	store.Dispatch(SetLoading{Loading: true})
	post, err := api.GetPost(ctx, id)
	if err != nil {
		store.Dispatch(SetError{Err: err})
		return nil, err
	}
	store.Dispatch(SetCurrentPost{Post: post})
	return post, nil
}

// Publish creates a post remotely and adds it on top of the collection.
func Publish(ctx context.Context, store *Store, api PostAPI, req dto.CreatePostRequest) (*models.Post, error) {
	store.Dispatch(SetLoading{Loading: true})
	post, err := api.CreatePost(ctx, req)
	if err != nil {
		store.Dispatch(SetError{Err: err})
		return nil, err
	}
	store.Dispatch(AddPost{Post: *post})
	return post, nil
}

// LoadStudent replaces the collection with the posts of one student.
func LoadStudent(ctx context.Context, store *Store, api StudentPostAPI, studentID int64) error {
	store.Dispatch(SetLoading{Loading: true})
	posts, err := api.StudentPosts(ctx, studentID)
	if err != nil {
		store.Dispatch(SetError{Err: err})
		return err
	}
	store.Dispatch(SetPosts{Posts: posts})
	return nil
}
