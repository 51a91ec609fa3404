package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api")
}

func TestListPostsAcceptsLegacyID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id": 2, "title": "Novo", "content": "c", "author": "a", "authorType": "teacher"},
			{"ID": 1, "title": "Antigo", "content": "c", "author": "a", "authorType": "student"}
		]`)
	})

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
	assert.Equal(t, int64(1), posts[1].ID)
	assert.Equal(t, models.AuthorStudent, posts[1].AuthorType)
}

func TestLoginKeepsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/loginStudent":
			var req dto.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ana.silva@aluno.postech.com", req.Email)
			_, _ = io.WriteString(w, `{"token":"tok-1","tokenType":"Bearer","expiresAt":"2030-01-01T00:00:00Z",
				"user":{"id":7,"name":"Ana Silva","email":"ana.silva@aluno.postech.com","studentId":"EST001"}}`)
		case "/api/posts/3":
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	session, err := c.LoginStudent(context.Background(), "ana.silva@aluno.postech.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, models.Actor{ID: 7, Name: "Ana Silva", Email: "ana.silva@aluno.postech.com", Role: models.RoleStudent}, session.Actor)
	assert.Equal(t, "tok-1", c.Token())

	require.NoError(t, c.DeletePost(context.Background(), 3))
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
		field    string
	}{
		{
			name:     "validation",
			status:   http.StatusBadRequest,
			body:     `{"success":false,"message":"title must be at least 5 characters","error":{"code":"VAL_001","message":"title must be at least 5 characters","field":"title"}}`,
			sentinel: apperrors.ErrValidationFailed,
			message:  "title must be at least 5 characters",
			field:    "title",
		},
		{
			name:     "duplicate",
			status:   http.StatusBadRequest,
			body:     `{"success":false,"message":"a student with this email already exists","error":{"code":"RES_002","message":"a student with this email already exists","field":"email"}}`,
			sentinel: apperrors.ErrConflict,
			message:  "a student with this email already exists",
			field:    "email",
		},
		{
			name:     "restricted delete",
			status:   http.StatusBadRequest,
			body:     `{"success":false,"message":"discipline has classes and cannot be deleted","error":{"code":"RES_004","message":"discipline has classes and cannot be deleted"}}`,
			sentinel: apperrors.ErrConflict,
			message:  "discipline has classes and cannot be deleted",
		},
		{
			name:     "plain bad request",
			status:   http.StatusBadRequest,
			body:     `{"success":false,"message":"invalid id","error":{"code":"RES_003","message":"invalid id","field":"id"}}`,
			sentinel: apperrors.ErrBadRequest,
			message:  "invalid id",
			field:    "id",
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"success":false,"message":"post not found","error":{"code":"RES_001","message":"post not found"}}`,
			sentinel: apperrors.ErrResourceNotFound,
			message:  "post not found",
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{"success":false,"message":"nope","error":{"code":"AUTH_009","message":"nope"}}`,
			sentinel: apperrors.ErrPermissionDenied,
			message:  "nope",
		},
		{
			name:     "non json body",
			status:   http.StatusUnauthorized,
			body:     `unauthorized`,
			sentinel: apperrors.ErrUnauthorized,
			message:  "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetPost(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), err.Error())
			assert.True(t, IsStatus(err, tt.status))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}
}

func TestVerifyUnauthorizedIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	valid, err := c.Verify(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSearchEscapesTerm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/search", r.URL.Path)
		assert.Equal(t, "c++ & go", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `[]`)
	})

	posts, err := c.SearchPosts(context.Background(), "c++ & go")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestStudentPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/students/4/posts", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":12,"title":"Resumo da aula","content":"Padrões de arquitetura.","author":"Ana Silva","authorType":"student","authorId":4}]`)
	})

	posts, err := c.StudentPosts(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(12), posts[0].ID)
	assert.Equal(t, models.AuthorStudent, posts[0].AuthorType)
	require.NotNil(t, posts[0].AuthorID)
	assert.Equal(t, int64(4), *posts[0].AuthorID)
}
