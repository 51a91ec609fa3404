package memory

import (
	"context"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

type teacherRepository struct {
	db *DB
}

func byName[T any](name func(*T) string, id func(*T) int64) func(a, b *T) bool {
	return func(a, b *T) bool {
		if name(a) != name(b) {
			return name(a) < name(b)
		}
		return id(a) < id(b)
	}
}

// emailTaken must be called with the lock held.
func (r *teacherRepository) emailTaken(email string, except int64) bool {
	for id, t := range r.db.teachers {
		if id != except && t.Email == email {
			return true
		}
	}
	return false
}

func (r *teacherRepository) Create(_ context.Context, teacher *models.Teacher) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.emailTaken(teacher.Email, 0) {
		return apperrors.ErrTeacherEmailExists
	}
	teacher.ID = r.db.nextID("teachers")
	teacher.Timestamps = stamp(r.db.now())
	r.db.teachers[teacher.ID] = *teacher
	return nil
}

func (r *teacherRepository) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return &t, nil
}

func (r *teacherRepository) GetByEmail(_ context.Context, email string) (*models.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, t := range r.db.teachers {
		if t.Email == email {
			t := t
			return &t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (r *teacherRepository) GetAll(_ context.Context) ([]*models.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return sortedValues(r.db.teachers, byName(
		func(t *models.Teacher) string { return t.Name },
		func(t *models.Teacher) int64 { return t.ID },
	)), nil
}

func (r *teacherRepository) Update(_ context.Context, id int64, patch repositories.TeacherPatch) (*models.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, apperrors.ErrTeacherEmailExists
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Email != nil {
		t.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		t.PasswordHash = *patch.PasswordHash
	}
	t.UpdatedAt = r.db.now()
	r.db.teachers[id] = t
	return &t, nil
}

func (r *teacherRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	for _, d := range r.db.disciplines {
		if d.TeacherID == id {
			return apperrors.ErrTeacherHasDisciplines
		}
	}
	delete(r.db.teachers, id)
	return nil
}
