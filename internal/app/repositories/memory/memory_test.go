package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

// tickingDB returns a DB whose clock advances one minute per call.
func tickingDB() *DB {
	db := New()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var n int
	db.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return db
}

func strPtr(s string) *string { return &s }

func TestPostsOrderingAndSearch(t *testing.T) {
	ctx := context.Background()
	repos := tickingDB().Repositories()

	for _, title := range []string{"Introdução ao React", "Fundamentos de JavaScript", "APIs com Node"} {
		require.NoError(t, repos.Posts.Create(ctx, &models.Post{Title: title, Content: "This is a sufficiently long body of text.", Author: "Prof. Silva"}))
	}

	all, err := repos.Posts.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "APIs com Node", all[0].Title)
	assert.Equal(t, "Introdução ao React", all[2].Title)
	assert.Equal(t, models.AuthorTeacher, all[0].AuthorType)

	found, err := repos.Posts.Search(ctx, "REACT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Introdução ao React", found[0].Title)

	found, err = repos.Posts.Search(ctx, "silva")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestPostsPartialUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repos := tickingDB().Repositories()

	post := &models.Post{Title: "Hello World", Content: "This is a sufficiently long body of text.", Author: "Prof. Silva"}
	require.NoError(t, repos.Posts.Create(ctx, post))

	updated, err := repos.Posts.Update(ctx, post.ID, repositories.PostPatch{Title: strPtr("Hello again")})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, post.Content, updated.Content)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = repos.Posts.Update(ctx, 999, repositories.PostPatch{})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)

	assert.ErrorIs(t, repos.Posts.Delete(ctx, 999), apperrors.ErrPostNotFound)
	all, _ := repos.Posts.GetAll(ctx)
	assert.Len(t, all, 1)

	require.NoError(t, repos.Posts.Delete(ctx, post.ID))
	_, err = repos.Posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestPostsReturnedCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	id := int64(1)
	post := &models.Post{Title: "Hello World", Content: "This is a sufficiently long body of text.", Author: "Ana", AuthorType: models.AuthorStudent, AuthorID: &id}
	require.NoError(t, repos.Posts.Create(ctx, post))

	got, err := repos.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	*got.AuthorID = 99

	again, _ := repos.Posts.GetByID(ctx, post.ID)
	assert.Equal(t, "Hello World", again.Title)
	assert.Equal(t, int64(1), *again.AuthorID)

	mine, err := repos.Posts.GetByAuthor(ctx, models.AuthorStudent, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	others, _ := repos.Posts.GetByAuthor(ctx, models.AuthorTeacher, 1)
	assert.Empty(t, others)
}

func TestStudentUniqueness(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	require.NoError(t, repos.Students.Create(ctx, &models.Student{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", StudentID: "EST001"}))

	err := repos.Students.Create(ctx, &models.Student{Name: "Ana 2", Email: "ana@x.com", PasswordHash: "h", StudentID: "EST009"})
	assert.ErrorIs(t, err, apperrors.ErrStudentEmailExists)

	err = repos.Students.Create(ctx, &models.Student{Name: "Bia", Email: "bia@x.com", PasswordHash: "h", StudentID: "EST001"})
	assert.ErrorIs(t, err, apperrors.ErrStudentCodeExists)

	bia := &models.Student{Name: "Bia", Email: "bia@x.com", PasswordHash: "h", StudentID: "EST002", Course: strPtr("Dados")}
	require.NoError(t, repos.Students.Create(ctx, bia))

	_, err = repos.Students.Update(ctx, bia.ID, repositories.StudentPatch{Email: strPtr("ana@x.com")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// keeping one's own email is not a conflict
	updated, err := repos.Students.Update(ctx, bia.ID, repositories.StudentPatch{Email: strPtr("bia@x.com"), Course: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Course)

	byEmail, err := repos.Students.GetByEmail(ctx, "bia@x.com")
	require.NoError(t, err)
	assert.Equal(t, bia.ID, byEmail.ID)
}

func TestRestrictedDeletes(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	teacher := &models.Teacher{Name: "Prof. Silva", Email: "silva@x.com"}
	require.NoError(t, repos.Teachers.Create(ctx, teacher))
	assert.ErrorIs(t, repos.Teachers.Create(ctx, &models.Teacher{Name: "Other", Email: "silva@x.com"}), apperrors.ErrTeacherEmailExists)

	assert.ErrorIs(t, repos.Disciplines.Create(ctx, &models.Discipline{Name: "Algoritmos", TeacherID: 42}), apperrors.ErrUnknownTeacher)

	discipline := &models.Discipline{Name: "Algoritmos", TeacherID: teacher.ID}
	require.NoError(t, repos.Disciplines.Create(ctx, discipline))

	start := models.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	before := models.NewDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, repos.Classes.Create(ctx, &models.Class{Name: "T1", DisciplineID: discipline.ID, StartDate: start, EndDate: &before}), apperrors.ErrClassEndBeforeStart)
	assert.ErrorIs(t, repos.Classes.Create(ctx, &models.Class{Name: "T1", DisciplineID: 77, StartDate: start}), apperrors.ErrUnknownDiscipline)

	class := &models.Class{Name: "T1", DisciplineID: discipline.ID, StartDate: start, Image: []byte{1, 2, 3}}
	require.NoError(t, repos.Classes.Create(ctx, class))

	end := models.NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	updated, err := repos.Classes.Update(ctx, class.ID, repositories.ClassPatch{EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, end, *updated.EndDate)

	updated, err = repos.Classes.Update(ctx, class.ID, repositories.ClassPatch{EndDate: &models.Date{}})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)

	assert.ErrorIs(t, repos.Teachers.Delete(ctx, teacher.ID), apperrors.ErrTeacherHasDisciplines)
	assert.ErrorIs(t, repos.Disciplines.Delete(ctx, discipline.ID), apperrors.ErrDisciplineHasClasses)

	require.NoError(t, repos.Classes.Delete(ctx, class.ID))
	require.NoError(t, repos.Disciplines.Delete(ctx, discipline.ID))
	require.NoError(t, repos.Teachers.Delete(ctx, teacher.ID))
	assert.ErrorIs(t, repos.Teachers.Delete(ctx, teacher.ID), apperrors.ErrTeacherNotFound)
}
