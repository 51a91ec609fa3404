package memory

import (
	"context"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

type classRepository struct {
	db *DB
}

func cloneClass(c models.Class) *models.Class {
	c.Description = copyString(c.Description)
	c.Image = copyBytes(c.Image)
	if c.EndDate != nil {
		end := *c.EndDate
		c.EndDate = &end
	}
	c.Discipline = nil
	return &c
}

func (r *classRepository) Create(_ context.Context, class *models.Class) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.disciplines[class.DisciplineID]; !ok {
		return apperrors.ErrUnknownDiscipline
	}
	if class.EndsBeforeStart() {
		return apperrors.ErrClassEndBeforeStart
	}
	class.Description = clearable(class.Description)
	class.Image = copyBytes(class.Image)
	class.ID = r.db.nextID("classes")
	class.Timestamps = stamp(r.db.now())
	r.db.classes[class.ID] = *cloneClass(*class)
	return nil
}

func (r *classRepository) GetByID(_ context.Context, id int64) (*models.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return cloneClass(c), nil
}

func (r *classRepository) GetAll(_ context.Context) ([]*models.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	classes := sortedValues(r.db.classes, func(a, b *models.Class) bool {
		if !a.StartDate.Equal(b.StartDate.Time) {
			return a.StartDate.Before(b.StartDate.Time)
		}
		return a.ID < b.ID
	})
	for i, c := range classes {
		classes[i] = cloneClass(*c)
	}
	return classes, nil
}

func (r *classRepository) Update(_ context.Context, id int64, patch repositories.ClassPatch) (*models.Class, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	if patch.DisciplineID != nil {
		if _, ok := r.db.disciplines[*patch.DisciplineID]; !ok {
			return nil, apperrors.ErrUnknownDiscipline
		}
		c.DisciplineID = *patch.DisciplineID
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = clearable(patch.Description)
	}
	if patch.Image != nil {
		c.Image = copyBytes(*patch.Image)
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		c.EndDate = nil
		if !patch.EndDate.IsZero() {
			end := *patch.EndDate
			c.EndDate = &end
		}
	}
	if c.EndsBeforeStart() {
		return nil, apperrors.ErrClassEndBeforeStart
	}
	c.UpdatedAt = r.db.now()
	r.db.classes[id] = c
	return cloneClass(c), nil
}

func (r *classRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(r.db.classes, id)
	return nil
}
