package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/welearn/internal/app/repositories/memory"
	"github.com/yigit/welearn/internal/config"
	"github.com/yigit/welearn/internal/pkg/auth"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	ctx := context.Background()
	repos := memory.New().Repositories()

	cfg := &config.Config{}
	cfg.Seed.Enabled = true
	cfg.Seed.DemoData = true
	cfg.Seed.TeacherName = "Administrador"
	cfg.Seed.TeacherEmail = "Admin@WeLearn.local"
	cfg.Seed.TeacherPassword = "admin123"

	for i := 0; i < 2; i++ {
		require.NoError(t, CreateDefaultData(ctx, repos, cfg, zerolog.Nop()))
	}

	teachers, err := repos.Teachers.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "admin@welearn.local", teachers[0].Email)
	assert.True(t, auth.CheckPassword(teachers[0].PasswordHash, "admin123"))

	students, err := repos.Students.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 3)

	ana, err := repos.Students.GetByEmail(ctx, "ana.silva@aluno.postech.com")
	require.NoError(t, err)
	assert.Equal(t, "EST001", ana.StudentID)
	assert.True(t, auth.CheckPassword(ana.PasswordHash, DemoStudentPassword))

	posts, err := repos.Posts.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Desenvolvimento Full Stack Moderno", posts[0].Title)
	assert.Nil(t, posts[0].AuthorID)
}

func TestCreateDefaultDataDisabled(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()

	cfg := &config.Config{}
	require.NoError(t, CreateDefaultData(ctx, repos, cfg, zerolog.Nop()))

	teachers, err := repos.Teachers.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, teachers)
}
