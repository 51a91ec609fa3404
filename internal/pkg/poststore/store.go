// Package poststore keeps the client side view of posts: the loaded
// collection, a locally filtered view, the selected post and request
// status. All changes go through Dispatch.
package poststore

import (
	"strings"
	"sync"

	"github.com/yigit/welearn/internal/app/models"
)

// State is an immutable snapshot of the store.
type State struct {
	Posts      []models.Post
	Filtered   []models.Post
	Current    *models.Post
	Loading    bool
	Err        error
	SearchTerm string
}

// Reduce returns the state that results from applying action to s.
// It never modifies s.
func Reduce(s State, action Action) State {
	next := s

	switch a := action.(type) {
	case SetLoading:
		next.Loading = a.Loading
	case SetError:
		next.Err = a.Err
		next.Loading = false
	case ClearError:
		next.Err = nil
	case SetPosts:
		next.Posts = clonePosts(a.Posts)
		next.Loading, next.Err = false, nil
	case SetCurrentPost:
		next.Current = clonePost(a.Post)
		next.Loading, next.Err = false, nil
	case ClearCurrentPost:
		next.Current = nil
	case AddPost:
		posts := make([]models.Post, 0, len(s.Posts)+1)
		posts = append(posts, a.Post)
		next.Posts = append(posts, s.Posts...)
		next.Loading, next.Err = false, nil
	case UpdatePost:
		next.Posts = replaceByID(s.Posts, a.Post)
		if s.Current != nil && s.Current.ID == a.Post.ID {
			next.Current = clonePost(&a.Post)
		}
		next.Loading, next.Err = false, nil
	case DeletePost:
		next.Posts = removeByID(s.Posts, a.ID)
		if s.Current != nil && s.Current.ID == a.ID {
			next.Current = nil
		}
		next.Loading, next.Err = false, nil
	case SetSearchTerm:
		next.SearchTerm = a.Term
	default:
		return s
	}

	next.Filtered = Filter(next.Posts, next.SearchTerm)
	return next
}

// Filter returns the posts whose title, content or author contains term,
// ignoring case. The term is matched as given, surrounding spaces
// included. An empty term matches everything.
func Filter(posts []models.Post, term string) []models.Post {
	term = strings.ToLower(term)
	if term == "" {
		return clonePosts(posts)
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Content), term) ||
			strings.Contains(strings.ToLower(p.Author), term) {
			out = append(out, p)
		}
	}
	return out
}

func replaceByID(posts []models.Post, updated models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	replaced := false
	for _, p := range posts {
		if p.ID != updated.ID {
			out = append(out, p)
			continue
		}
		// the same id may appear only once
		if !replaced {
			out = append(out, updated)
			replaced = true
		}
	}
	return out
}

func removeByID(posts []models.Post, id int64) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func clonePosts(posts []models.Post) []models.Post {
	if posts == nil {
		return nil
	}
	out := make([]models.Post, len(posts))
	copy(out, posts)
	return out
}

func clonePost(p *models.Post) *models.Post {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Listener is called with the new state after every dispatch.
type Listener func(State)

// Store serializes dispatches and notifies listeners. Listeners must
// not call Dispatch.
type Store struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New creates an empty store
func New() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action and notifies listeners before returning.
func (s *Store) Dispatch(action Action) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// Subscribe registers l; the returned func removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
