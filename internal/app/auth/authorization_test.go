package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/repositories/memory"
	"github.com/yigit/welearn/internal/pkg/apperrors"
)

func idPtr(id int64) *int64 { return &id }

func TestCanModifyPost(t *testing.T) {
	teacher := &models.Actor{ID: 1, Name: "Prof. Silva", Role: models.RoleTeacher}
	ana := &models.Actor{ID: 1, Name: "Ana Silva", Role: models.RoleStudent}
	carlos := &models.Actor{ID: 2, Name: "Carlos Santos", Role: models.RoleStudent}

	teacherPost := &models.Post{Author: "Prof. Silva", AuthorType: models.AuthorTeacher, AuthorID: idPtr(1)}
	anaPost := &models.Post{Author: "Ana Silva", AuthorType: models.AuthorStudent, AuthorID: idPtr(1)}
	legacyAnaPost := &models.Post{Author: "Ana Silva", AuthorType: models.AuthorStudent}
	renamedPost := &models.Post{Author: "Carlos Santos", AuthorType: models.AuthorStudent, AuthorID: idPtr(1)}

	tests := []struct {
		name  string
		actor *models.Actor
		post  *models.Post
		want  bool
	}{
		{"teacher edits teacher post", teacher, teacherPost, true},
		{"teacher edits student post", teacher, anaPost, true},
		{"student edits own post", ana, anaPost, true},
		{"student edits other student post", carlos, anaPost, false},
		{"student edits teacher post with same id", ana, teacherPost, false},
		{"legacy post matched by name", ana, legacyAnaPost, true},
		{"legacy post other name", carlos, legacyAnaPost, false},
		{"id wins over name", carlos, renamedPost, false},
		{"anonymous", nil, anaPost, false},
		{"unknown role", &models.Actor{ID: 1, Role: "admin"}, anaPost, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModifyPost(tc.actor, tc.post))
		})
	}
}

func TestRoleChecks(t *testing.T) {
	teacher := &models.Actor{ID: 9, Role: models.RoleTeacher}
	student := &models.Actor{ID: 3, Role: models.RoleStudent}

	assert.True(t, CanManageStudent(teacher, 3))
	assert.True(t, CanManageStudent(student, 3))
	assert.False(t, CanManageStudent(student, 4))
	assert.False(t, CanManageStudent(nil, 3))

	assert.NoError(t, RequireTeacher(teacher))
	assert.ErrorIs(t, RequireTeacher(student), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, RequireTeacher(nil), apperrors.ErrUnauthorized)
}

func TestValidatePostOwnershipReportsMissingFirst(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	svc := NewAuthorizationService(repos.Posts, repos.Students)

	post := &models.Post{Title: "Hello World", Content: "This is a sufficiently long body of text.", Author: "Ana Silva", AuthorType: models.AuthorStudent, AuthorID: idPtr(1)}
	require.NoError(t, repos.Posts.Create(ctx, post))

	carlos := &models.Actor{ID: 2, Name: "Carlos Santos", Role: models.RoleStudent}

	_, err := svc.ValidatePostOwnership(ctx, carlos, 404)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = svc.ValidatePostOwnership(ctx, carlos, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := svc.ValidatePostOwnership(ctx, &models.Actor{ID: 1, Name: "Ana Silva", Role: models.RoleStudent}, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	_, err = svc.ValidatePostOwnership(ctx, nil, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidateStudentAccess(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	svc := NewAuthorizationService(repos.Posts, repos.Students)

	ana := &models.Student{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", StudentID: "EST001"}
	require.NoError(t, repos.Students.Create(ctx, ana))

	_, err := svc.ValidateStudentAccess(ctx, &models.Actor{ID: 5, Role: models.RoleStudent}, 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.ValidateStudentAccess(ctx, &models.Actor{ID: 5, Role: models.RoleStudent}, ana.ID)
	assert.ErrorIs(t, err, ErrNotAccountOwner)

	_, err = svc.ValidateStudentAccess(ctx, &models.Actor{ID: ana.ID, Role: models.RoleStudent}, ana.ID)
	assert.NoError(t, err)
}
