package memory

import (
	"context"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

type disciplineRepository struct {
	db *DB
}

func cloneDiscipline(d models.Discipline) *models.Discipline {
	d.Description = copyString(d.Description)
	d.Teacher = nil
	return &d
}

func (r *disciplineRepository) Create(_ context.Context, discipline *models.Discipline) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.teachers[discipline.TeacherID]; !ok {
		return apperrors.ErrUnknownTeacher
	}
	discipline.Description = clearable(discipline.Description)
	discipline.ID = r.db.nextID("disciplines")
	discipline.Timestamps = stamp(r.db.now())
	r.db.disciplines[discipline.ID] = *cloneDiscipline(*discipline)
	return nil
}

func (r *disciplineRepository) GetByID(_ context.Context, id int64) (*models.Discipline, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	d, ok := r.db.disciplines[id]
	if !ok {
		return nil, apperrors.ErrDisciplineNotFound
	}
	return cloneDiscipline(d), nil
}

func (r *disciplineRepository) GetAll(_ context.Context) ([]*models.Discipline, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	disciplines := sortedValues(r.db.disciplines, byName(
		func(d *models.Discipline) string { return d.Name },
		func(d *models.Discipline) int64 { return d.ID },
	))
	for i, d := range disciplines {
		disciplines[i] = cloneDiscipline(*d)
	}
	return disciplines, nil
}

func (r *disciplineRepository) Update(_ context.Context, id int64, patch repositories.DisciplinePatch) (*models.Discipline, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	d, ok := r.db.disciplines[id]
	if !ok {
		return nil, apperrors.ErrDisciplineNotFound
	}
	if patch.TeacherID != nil {
		if _, ok := r.db.teachers[*patch.TeacherID]; !ok {
			return nil, apperrors.ErrUnknownTeacher
		}
		d.TeacherID = *patch.TeacherID
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = clearable(patch.Description)
	}
	d.UpdatedAt = r.db.now()
	r.db.disciplines[id] = d
	return cloneDiscipline(d), nil
}

func (r *disciplineRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.disciplines[id]; !ok {
		return apperrors.ErrDisciplineNotFound
	}
	for _, c := range r.db.classes {
		if c.DisciplineID == id {
			return apperrors.ErrDisciplineHasClasses
		}
	}
	delete(r.db.disciplines, id)
	return nil
}
