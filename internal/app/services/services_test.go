package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/app/repositories/memory"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	pkgauth "github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/validation"
)

const longContent = "This is a sufficiently long body of text."

func TestMain(m *testing.M) {
	pkgauth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fixture struct {
	repos   *repositories.Repositories
	svc     *Services
	teacher *models.Actor
	ana     *models.Actor
	bia     *models.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.New().Repositories()
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "welearn"})
	svc := NewServices(repos, jwtService)

	hash, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)
	teacher := &models.Teacher{Name: "Prof. Silva", Email: "silva@postech.com", PasswordHash: hash}
	require.NoError(t, repos.Teachers.Create(ctx, teacher))

	ana, err := svc.Students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "Ana Silva", Email: "Ana.Silva@aluno.postech.com", Password: "123456", StudentID: "EST001"})
	require.NoError(t, err)
	bia, err := svc.Students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "Bia Souza", Email: "bia@aluno.postech.com", Password: "123456", StudentID: "EST002"})
	require.NoError(t, err)

	ta, aa, ba := teacher.Actor(), ana.Actor(), bia.Actor()
	return &fixture{repos: repos, svc: svc, teacher: &ta, ana: &aa, bia: &ba}
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name   string
		req    dto.CreatePostRequest
		fields []string
	}{
		{"short title", dto.CreatePostRequest{Title: "Hey", Content: longContent, Author: "Prof. Silva"}, []string{"title"}},
		{"short content", dto.CreatePostRequest{Title: "Hello World", Content: "too short", Author: "Prof. Silva"}, []string{"content"}},
		{"everything missing", dto.CreatePostRequest{}, []string{"title", "content", "author"}},
		{"blank title", dto.CreatePostRequest{Title: "      ", Content: longContent, Author: "Prof. Silva"}, []string{"title"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			_, err := f.svc.Posts.CreatePost(ctx, f.teacher, &tc.req)
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tc.fields, verrs.Fields())
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

			all, err := f.svc.Posts.ListPosts(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestCreatePostByTeacher(t *testing.T) {
	f := newFixture(t)

	post, err := f.svc.Posts.CreatePost(context.Background(), f.teacher, &dto.CreatePostRequest{
		Title:   "Hello World",
		Content: longContent,
		Author:  "Prof. Silva",
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, models.AuthorTeacher, post.AuthorType)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, f.teacher.ID, *post.AuthorID)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostByStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Posts.CreatePost(ctx, f.ana, &dto.CreatePostRequest{
		Title:   "Minha dúvida",
		Content: longContent,
		Author:  "Someone Else",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", post.Author)
	assert.Equal(t, models.AuthorStudent, post.AuthorType)
	assert.Equal(t, f.ana.ID, *post.AuthorID)

	teacherType := models.AuthorTeacher
	_, err = f.svc.Posts.CreatePost(ctx, f.ana, &dto.CreatePostRequest{Title: "Hello World", Content: longContent, AuthorType: &teacherType})
	assert.ErrorIs(t, err, auth.ErrAuthorTypeDenied)

	bogus := models.AuthorType("admin")
	_, err = f.svc.Posts.CreatePost(ctx, f.ana, &dto.CreatePostRequest{Title: "Hello World", Content: longContent, AuthorType: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.Posts.CreatePost(ctx, nil, &dto.CreatePostRequest{Title: "Hello World", Content: longContent, Author: "X Y"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	mine, err := f.svc.Posts.ListStudentPosts(ctx, f.ana.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.Posts.ListStudentPosts(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdatePostPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Posts.CreatePost(ctx, f.ana, &dto.CreatePostRequest{Title: "Minha dúvida", Content: longContent})
	require.NoError(t, err)

	title := "Nova pergunta"
	author := "Hacker"

	_, err = f.svc.Posts.UpdatePost(ctx, f.bia, post.ID, &dto.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.Posts.UpdatePost(ctx, f.bia, 999, &dto.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	updated, err := f.svc.Posts.UpdatePost(ctx, f.ana, post.ID, &dto.UpdatePostRequest{Title: &title, Author: &author})
	require.NoError(t, err)
	assert.Equal(t, "Nova pergunta", updated.Title)
	assert.Equal(t, "Ana Silva", updated.Author)
	assert.Equal(t, longContent, updated.Content)

	short := "abc"
	_, err = f.svc.Posts.UpdatePost(ctx, f.ana, post.ID, &dto.UpdatePostRequest{Content: &short})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"content"}, verrs.Fields())

	renamed, err := f.svc.Posts.UpdatePost(ctx, f.teacher, post.ID, &dto.UpdatePostRequest{Author: &author})
	require.NoError(t, err)
	assert.Equal(t, "Hacker", renamed.Author)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Posts.CreatePost(ctx, f.ana, &dto.CreatePostRequest{Title: "Minha dúvida", Content: longContent})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Posts.DeletePost(ctx, f.bia, post.ID), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, f.svc.Posts.DeletePost(ctx, f.teacher, 999), apperrors.ErrPostNotFound)

	all, _ := f.svc.Posts.ListPosts(ctx)
	assert.Len(t, all, 1)

	require.NoError(t, f.svc.Posts.DeletePost(ctx, f.teacher, post.ID))
	_, err = f.svc.Posts.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestSearchPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"Introdução ao React", "Fundamentos de JavaScript"} {
		_, err := f.svc.Posts.CreatePost(ctx, f.teacher, &dto.CreatePostRequest{Title: title, Content: longContent, Author: "Prof. Silva"})
		require.NoError(t, err)
	}

	found, err := f.svc.Posts.SearchPosts(ctx, "react")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Introdução ao React", found[0].Title)

	found, err = f.svc.Posts.SearchPosts(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestStudentAccountOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course := "Ciência de Dados"
	_, err := f.svc.Students.UpdateStudent(ctx, f.bia, f.ana.ID, &dto.UpdateStudentRequest{Course: &course})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := f.svc.Students.UpdateStudent(ctx, f.ana, f.ana.ID, &dto.UpdateStudentRequest{Course: &course})
	require.NoError(t, err)
	require.NotNil(t, updated.Course)
	assert.Equal(t, course, *updated.Course)

	assert.ErrorIs(t, f.svc.Students.DeleteStudent(ctx, f.ana, 999), apperrors.ErrStudentNotFound)
	require.NoError(t, f.svc.Students.DeleteStudent(ctx, f.teacher, f.bia.ID))

	_, err = f.svc.Students.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "Ana Clone", Email: "ana.silva@aluno.postech.com", Password: "123456", StudentID: "EST009"})
	assert.ErrorIs(t, err, apperrors.ErrStudentEmailExists)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Auth.LoginStudent(ctx, &dto.LoginRequest{Email: "ana.silva@aluno.postech.com", Password: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	student, ok := resp.User.(*models.Student)
	require.True(t, ok)
	assert.Equal(t, f.ana.ID, student.ID)

	_, err = f.svc.Auth.LoginStudent(ctx, &dto.LoginRequest{Email: "ana.silva@aluno.postech.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrLoginFailed)
	_, err = f.svc.Auth.LoginStudent(ctx, &dto.LoginRequest{Email: "nobody@aluno.postech.com", Password: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Auth.LoginTeacher(ctx, &dto.LoginRequest{Email: "silva@postech.com", Password: "secret1"})
	require.NoError(t, err)

	passwordless, err := f.svc.Teachers.CreateTeacher(ctx, f.teacher, &dto.CreateTeacherRequest{Name: "Prof. Maria", Email: "maria@postech.com"})
	require.NoError(t, err)
	assert.False(t, passwordless.HasPassword())
	_, err = f.svc.Auth.LoginTeacher(ctx, &dto.LoginRequest{Email: "maria@postech.com", Password: ""})
	assert.ErrorIs(t, err, apperrors.ErrLoginFailed)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Auth.Verify(ctx, f.ana)
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	require.NoError(t, f.svc.Students.DeleteStudent(ctx, f.ana, f.ana.ID))
	_, err = f.svc.Auth.Verify(ctx, f.ana)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTeacherOnlyOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Teachers.CreateTeacher(ctx, f.ana, &dto.CreateTeacherRequest{Name: "Fake", Email: "fake@x.com"})
	assert.ErrorIs(t, err, auth.ErrNotTeacher)
	_, err = f.svc.Disciplines.CreateDiscipline(ctx, f.ana, &dto.CreateDisciplineRequest{Name: "Algoritmos"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = f.svc.Classes.CreateClass(ctx, nil, &dto.CreateClassRequest{Name: "T1"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDisciplineAndClassLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	discipline, err := f.svc.Disciplines.CreateDiscipline(ctx, f.teacher, &dto.CreateDisciplineRequest{Name: "Arquitetura de Software"})
	require.NoError(t, err)
	assert.Equal(t, f.teacher.ID, discipline.TeacherID)

	unknown := int64(404)
	_, err = f.svc.Disciplines.CreateDiscipline(ctx, f.teacher, &dto.CreateDisciplineRequest{Name: "Redes", TeacherID: &unknown})
	assert.ErrorIs(t, err, apperrors.ErrUnknownTeacher)

	got, err := f.svc.Disciplines.GetDiscipline(ctx, discipline.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Teacher)
	assert.Equal(t, "Prof. Silva", got.Teacher.Name)

	start := models.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	end := models.NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	before := models.NewDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	_, err = f.svc.Classes.CreateClass(ctx, f.teacher, &dto.CreateClassRequest{Name: "T1", DisciplineID: discipline.ID})
	assert.ErrorIs(t, err, apperrors.ErrClassStartDateNeeded)
	_, err = f.svc.Classes.CreateClass(ctx, f.teacher, &dto.CreateClassRequest{Name: "T1", DisciplineID: discipline.ID, StartDate: &start, EndDate: &before})
	assert.ErrorIs(t, err, apperrors.ErrClassEndBeforeStart)

	class, err := f.svc.Classes.CreateClass(ctx, f.teacher, &dto.CreateClassRequest{Name: "T1", DisciplineID: discipline.ID, StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	// moving the start past the stored end inverts the range
	late := models.NewDate(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	_, err = f.svc.Classes.UpdateClass(ctx, f.teacher, class.ID, &dto.UpdateClassRequest{StartDate: &late})
	assert.ErrorIs(t, err, apperrors.ErrClassEndBeforeStart)

	withDiscipline, err := f.svc.Classes.GetClass(ctx, class.ID)
	require.NoError(t, err)
	require.NotNil(t, withDiscipline.Discipline)
	assert.Equal(t, "Arquitetura de Software", withDiscipline.Discipline.Name)
	assert.Equal(t, start, withDiscipline.StartDate)

	// a zero end date clears it, after which the later start is accepted
	cleared, err := f.svc.Classes.UpdateClass(ctx, f.teacher, class.ID, &dto.UpdateClassRequest{EndDate: &models.Date{}})
	require.NoError(t, err)
	assert.Nil(t, cleared.EndDate)
	moved, err := f.svc.Classes.UpdateClass(ctx, f.teacher, class.ID, &dto.UpdateClassRequest{StartDate: &late})
	require.NoError(t, err)
	assert.Equal(t, late, moved.StartDate)
	assert.Nil(t, moved.EndDate)

	assert.ErrorIs(t, f.svc.Teachers.DeleteTeacher(ctx, f.teacher, f.teacher.ID), apperrors.ErrTeacherHasDisciplines)
	assert.ErrorIs(t, f.svc.Disciplines.DeleteDiscipline(ctx, f.teacher, discipline.ID), apperrors.ErrDisciplineHasClasses)
	require.NoError(t, f.svc.Classes.DeleteClass(ctx, f.teacher, class.ID))
	require.NoError(t, f.svc.Disciplines.DeleteDiscipline(ctx, f.teacher, discipline.ID))
}
