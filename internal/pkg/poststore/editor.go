package poststore

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
)

// Phase is a step of the edit lifecycle of a single post.
type Phase int

// Editor phases
const (
	Viewing Phase = iota
	Editing
	Saving
	Deleting
	Removed
)

func (p Phase) String() string {
	switch p {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	case Deleting:
		return "deleting"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ErrInvalidTransition is returned when an editor method is called in
// the wrong phase.
var ErrInvalidTransition = errors.New("invalid editor transition")

// Editor drives viewing, editing and deleting one post. Successful
// saves and deletes are dispatched to the store. An Editor is not safe
// for concurrent use.
type Editor struct {
	store *Store
	api   PostAPI
	actor *models.Actor

	phase Phase
	post  models.Post
	err   error
}

// NewEditor starts in Viewing for post.
func NewEditor(store *Store, api PostAPI, actor *models.Actor, post models.Post) *Editor {
	return &Editor{store: store, api: api, actor: actor, post: post}
}

// Phase returns the current phase
func (e *Editor) Phase() Phase { return e.phase }

// Post returns the post as last saved
func (e *Editor) Post() models.Post { return e.post }

// Err returns the last save or delete failure
func (e *Editor) Err() error { return e.err }

// CanModify reports whether the actor may edit or delete the post.
func (e *Editor) CanModify() bool {
	return auth.CanModifyPost(e.actor, &e.post)
}

// Edit moves from Viewing to Editing.
func (e *Editor) Edit() error {
	if e.phase != Viewing {
		return e.invalid("edit")
	}
	if !e.CanModify() {
		return auth.ErrNotPostAuthor
	}
	e.phase = Editing
	return nil
}

// Save sends the changes. On success the editor returns to Viewing; on
// failure it stays in Editing and keeps the error.
func (e *Editor) Save(ctx context.Context, req dto.UpdatePostRequest) error {
	if e.phase != Editing {
		return e.invalid("save")
	}
	e.phase = Saving

	updated, err := e.api.UpdatePost(ctx, e.post.ID, req)
	if err != nil {
		e.phase = Editing
		e.err = err
		return err
	}

	e.post = *updated
	e.err = nil
	e.phase = Viewing
	e.store.Dispatch(UpdatePost{Post: *updated})
	return nil
}

// Delete moves from Viewing to Deleting, awaiting confirmation.
func (e *Editor) Delete() error {
	if e.phase != Viewing {
		return e.invalid("delete")
	}
	if !e.CanModify() {
		return auth.ErrNotPostAuthor
	}
	e.phase = Deleting
	return nil
}

// Confirm removes the post. A failed delete returns to Viewing and keeps
// the error.
func (e *Editor) Confirm(ctx context.Context) error {
	if e.phase != Deleting {
		return e.invalid("confirm")
	}

	if err := e.api.DeletePost(ctx, e.post.ID); err != nil {
		e.phase = Viewing
		e.err = err
		return err
	}

	e.err = nil
	e.phase = Removed
	e.store.Dispatch(DeletePost{ID: e.post.ID})
	return nil
}

// Cancel abandons an edit or a pending delete.
func (e *Editor) Cancel() error {
	switch e.phase {
	case Editing, Deleting:
		e.phase = Viewing
		return nil
	}
	return e.invalid("cancel")
}

func (e *Editor) invalid(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, e.phase)
}
