package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pauth "github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorDetailFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		field   string
		message string
	}{
		{"validation list", validation.Errors{{Field: "title", Message: "title must be at least 5 characters"}}, 400, dto.ErrorCodeValidationFailed, "title", "title must be at least 5 characters"},
		{"conflict", apperrors.ErrStudentEmailExists, 400, dto.ErrorCodeResourceAlreadyExists, "email", "a student with this email already exists"},
		{"restricted delete", apperrors.ErrTeacherHasDisciplines, 400, dto.ErrorCodeConflict, "", "teacher has disciplines and cannot be deleted"},
		{"not found wrapped", fmt.Errorf("lookup: %w", apperrors.ErrPostNotFound), 404, dto.ErrorCodeResourceNotFound, "", "post not found"},
		{"login", apperrors.ErrLoginFailed, 401, dto.ErrorCodeInvalidCredentials, "", "invalid email or password"},
		{"expired", auth.ErrExpiredToken, 401, dto.ErrorCodeExpiredToken, "", "token expired"},
		{"missing session", pauth.ErrNotAuthenticated, 401, dto.ErrorCodeUnauthorized, "", "authentication required"},
		{"forbidden", pauth.ErrNotPostAuthor, 403, dto.ErrorCodeForbidden, "", "you can only modify your own posts"},
		{"internal", errors.New("connection refused"), 500, dto.ErrorCodeInternalServer, "", "Internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := ErrorDetailFor(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, detail.Code)
			assert.Equal(t, tc.field, detail.Field)
			assert.Equal(t, tc.message, detail.Message)
		})
	}
}

func TestHandleAPIErrorBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/posts/1", nil)

	HandleAPIError(c, apperrors.ErrPostNotFound)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "post not found", body.Message)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
	assert.False(t, body.Timestamp.IsZero())
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetActor(c))
	})
	r.GET("/teachers-only", m.JWTAuth(), m.RoleRequired(models.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "welearn"})
	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour, TokenIssuer: "welearn"})
	router := newAuthRouter(jwtService)

	student, err := jwtService.GenerateToken(models.Actor{ID: 7, Name: "Ana Silva", Email: "ana@x.com", Role: models.RoleStudent})
	require.NoError(t, err)
	teacher, err := jwtService.GenerateToken(models.Actor{ID: 1, Name: "Prof. Silva", Email: "silva@x.com", Role: models.RoleTeacher})
	require.NoError(t, err)
	forged, err := other.GenerateToken(models.Actor{ID: 1, Name: "Prof. Silva", Role: models.RoleTeacher})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"bad scheme", "/me", "Basic abc", http.StatusUnauthorized},
		{"forged", "/me", "Bearer " + forged.AccessToken, http.StatusUnauthorized},
		{"student", "/me", "Bearer " + student.AccessToken, http.StatusOK},
		{"raw token", "/me", student.AccessToken, http.StatusOK},
		{"student on teacher route", "/teachers-only", "Bearer " + student.AccessToken, http.StatusForbidden},
		{"teacher on teacher route", "/teachers-only", "Bearer " + teacher.AccessToken, http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+student.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var actor models.Actor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actor))
	assert.Equal(t, models.Actor{ID: 7, Name: "Ana Silva", Email: "ana@x.com", Role: models.RoleStudent}, actor)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
