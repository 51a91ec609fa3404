package memory

import (
	"context"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

type studentRepository struct {
	db *DB
}

func cloneStudent(s models.Student) *models.Student {
	s.Course = copyString(s.Course)
	return &s
}

// conflict must be called with the lock held.
func (r *studentRepository) conflict(email, code string, except int64) error {
	for id, s := range r.db.students {
		if id == except {
			continue
		}
		if email != "" && s.Email == email {
			return apperrors.ErrStudentEmailExists
		}
		if code != "" && s.StudentID == code {
			return apperrors.ErrStudentCodeExists
		}
	}
	return nil
}

func (r *studentRepository) Create(_ context.Context, student *models.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.conflict(student.Email, student.StudentID, 0); err != nil {
		return err
	}
	student.Course = clearable(student.Course)
	student.ID = r.db.nextID("students")
	student.Timestamps = stamp(r.db.now())
	r.db.students[student.ID] = *cloneStudent(*student)
	return nil
}

func (r *studentRepository) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return cloneStudent(s), nil
}

func (r *studentRepository) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.students {
		if s.Email == email {
			return cloneStudent(s), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *studentRepository) GetAll(_ context.Context) ([]*models.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	students := sortedValues(r.db.students, byName(
		func(s *models.Student) string { return s.Name },
		func(s *models.Student) int64 { return s.ID },
	))
	for i, s := range students {
		students[i] = cloneStudent(*s)
	}
	return students, nil
}

func (r *studentRepository) Update(_ context.Context, id int64, patch repositories.StudentPatch) (*models.Student, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	var email, code string
	if patch.Email != nil {
		email = *patch.Email
	}
	if patch.StudentID != nil {
		code = *patch.StudentID
	}
	if err := r.conflict(email, code, id); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		s.PasswordHash = *patch.PasswordHash
	}
	if patch.StudentID != nil {
		s.StudentID = *patch.StudentID
	}
	if patch.Course != nil {
		s.Course = clearable(patch.Course)
	}
	s.UpdatedAt = r.db.now()
	r.db.students[id] = s
	return cloneStudent(s), nil
}

func (r *studentRepository) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.db.students, id)
	return nil
}
