// Package memory is an in-process repository driver with the same
// uniqueness, ordering and delete restrictions as the PostgreSQL one.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
)

// DB holds every table behind one lock so that cross table checks
// (foreign keys, restricted deletes) are atomic.
type DB struct {
	mu sync.RWMutex

	lastID      map[string]int64
	posts       map[int64]models.Post
	teachers    map[int64]models.Teacher
	students    map[int64]models.Student
	disciplines map[int64]models.Discipline
	classes     map[int64]models.Class

	now func() time.Time
}

// New returns an empty database.
func New() *DB {
	return &DB{
		lastID:      map[string]int64{},
		posts:       map[int64]models.Post{},
		teachers:    map[int64]models.Teacher{},
		students:    map[int64]models.Student{},
		disciplines: map[int64]models.Discipline{},
		classes:     map[int64]models.Class{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Repositories exposes the tables through the repository interfaces.
func (db *DB) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Posts:       &postRepository{db: db},
		Teachers:    &teacherRepository{db: db},
		Students:    &studentRepository{db: db},
		Disciplines: &disciplineRepository{db: db},
		Classes:     &classRepository{db: db},
	}
}

// nextID must be called with the write lock held.
func (db *DB) nextID(table string) int64 {
	db.lastID[table]++
	return db.lastID[table]
}

func stamp(now time.Time) models.Timestamps {
	return models.Timestamps{CreatedAt: now, UpdatedAt: now}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// clearable stores nil for an empty value.
func clearable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return copyString(s)
}

func copyInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

// sortedValues returns the map values ordered by less.
func sortedValues[T any](m map[int64]T, less func(a, b *T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
