package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func postRow(id int64, title string, authorID *int64, at time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(postColumns).
		AddRow(id, title, "This is a sufficiently long body of text.", "Prof. Silva", "teacher", authorID, at, at)
}

func TestPostRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("Hello World", "This is a sufficiently long body of text.", "Prof. Silva", "teacher", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	post := &models.Post{Title: "Hello World", Content: "This is a sufficiently long body of text.", Author: "Prof. Silva"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, models.AuthorTeacher, post.AuthorType)
	assert.Equal(t, now, post.CreatedAt)
}

func TestPostRepositoryGetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	now := time.Now()
	authorID := int64(4)

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(postRow(1, "Hello World", &authorID, now))
	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id = \\$1").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	post, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", post.Title)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, int64(4), *post.AuthorID)

	_, err = repo.GetByID(context.Background(), 99)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestPostRepositorySearchOrdersAndEscapes(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE \\(title ILIKE \\$1 OR content ILIKE \\$2 OR author ILIKE \\$3\\) ORDER BY created_at DESC, id DESC").
		WithArgs(`%50\%%`, `%50\%%`, `%50\%%`).
		WillReturnRows(postRow(2, "Second", nil, now).AddRow(int64(1), "First", "This is a sufficiently long body of text.", "Prof. Silva", "teacher", (*int64)(nil), now, now))

	posts, err := repo.Search(context.Background(), "50%")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
}

func TestPostRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)
	now := time.Now()

	mock.ExpectQuery("UPDATE posts SET title = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 RETURNING").
		WithArgs("New title", int64(1)).
		WillReturnRows(postRow(1, "New title", nil, now))
	mock.ExpectQuery("UPDATE posts").
		WithArgs("New title", int64(7)).
		WillReturnError(pgx.ErrNoRows)

	title := "New title"
	post, err := repo.Update(context.Background(), 1, PostPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", post.Title)
	assert.Equal(t, "This is a sufficiently long body of text.", post.Content)

	_, err = repo.Update(context.Background(), 7, PostPatch{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostRepositoryDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewPostRepository(mock)

	mock.ExpectExec("DELETE FROM posts WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM posts WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), apperrors.ErrPostNotFound)
}

func TestStudentRepositoryCreateConflicts(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"email", "students_email_key", apperrors.ErrStudentEmailExists},
		{"enrollment code", "students_student_id_key", apperrors.ErrStudentCodeExists},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewStudentRepository(mock)

			mock.ExpectQuery("INSERT INTO students").
				WithArgs("Ana", "ana@x.com", "hash", "EST001", pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

			err := repo.Create(context.Background(), &models.Student{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash", StudentID: "EST001"})
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, apperrors.ErrConflict)
		})
	}
}

func TestStudentRepositoryOpaqueFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM students").
		WithArgs("ana@x.com").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByEmail(context.Background(), "ana@x.com")
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestTeacherRepositoryDeleteRestricted(t *testing.T) {
	mock := newMock(t)
	repo := NewTeacherRepository(mock)

	mock.ExpectQuery("SELECT EXISTS \\( SELECT 1 FROM disciplines WHERE teacher_id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("DELETE FROM teachers WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), apperrors.ErrTeacherHasDisciplines)
	assert.NoError(t, repo.Delete(context.Background(), 2))
}

func TestDisciplineRepositoryUnknownTeacher(t *testing.T) {
	mock := newMock(t)
	repo := NewDisciplineRepository(mock)

	mock.ExpectQuery("INSERT INTO disciplines").
		WithArgs("Algoritmos", int64(42), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "disciplines_teacher_id_fkey"})

	err := repo.Create(context.Background(), &models.Discipline{Name: "Algoritmos", TeacherID: 42})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%react%", containsPattern("react"))
	assert.Equal(t, `%a\_b\\c%`, containsPattern(`a_b\c`))
}

func TestClearableDate(t *testing.T) {
	assert.Nil(t, clearableDate(nil))
	assert.Nil(t, clearableDate(&models.Date{}))

	end := models.NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	got := clearableDate(&end)
	require.NotNil(t, got)
	assert.Equal(t, end.Time, *got)
}
