package poststore

import "github.com/yigit/welearn/internal/app/models"

// Action is a state transition request handled by Reduce.
type Action interface {
	isAction()
}

type (
	// SetLoading toggles the loading flag
	SetLoading struct{ Loading bool }
	// SetError records a failure and stops loading
	SetError struct{ Err error }
	// ClearError drops the recorded failure
	ClearError struct{}
	// SetPosts replaces the collection
	SetPosts struct{ Posts []models.Post }
	// SetCurrentPost selects the post being viewed
	SetCurrentPost struct{ Post *models.Post }
	// ClearCurrentPost deselects the current post
	ClearCurrentPost struct{}
	// AddPost puts a new post on top of the collection
	AddPost struct{ Post models.Post }
	// UpdatePost replaces the post with the same id
	UpdatePost struct{ Post models.Post }
	// DeletePost removes the post with the given id
	DeletePost struct{ ID int64 }
	// SetSearchTerm changes the local filter
	SetSearchTerm struct{ Term string }
)

func (SetLoading) isAction()       {}
func (SetError) isAction()         {}
func (ClearError) isAction()       {}
func (SetPosts) isAction()         {}
func (SetCurrentPost) isAction()   {}
func (ClearCurrentPost) isAction() {}
func (AddPost) isAction()          {}
func (UpdatePost) isAction()       {}
func (DeletePost) isAction()       {}
func (SetSearchTerm) isAction()    {}
