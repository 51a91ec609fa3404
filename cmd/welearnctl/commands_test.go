package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/welearn/internal/bootstrap"
	"github.com/yigit/welearn/internal/config"
	"github.com/yigit/welearn/internal/pkg/auth"
)

func startAPI(t *testing.T) string {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "cli-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "welearn"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Seed.Enabled = true
	cfg.Seed.DemoData = true
	cfg.Seed.TeacherName = "Administrador"
	cfg.Seed.TeacherEmail = "admin@welearn.local"
	cfg.Seed.TeacherPassword = "admin123"

	ctx := context.Background()
	lgr := zerolog.Nop()
	database, repos, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	require.NoError(t, err)
	bootstrap.SeedData(ctx, cfg, repos, lgr)
	router := bootstrap.SetupRouter(cfg, bootstrap.BuildDependencies(cfg, repos, database, lgr), lgr)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"welearnctl"}, args...))
	return out.String(), err
}

var (
	tokenLine   = regexp.MustCompile(`WELEARN_TOKEN=(\S+)`)
	createdLine = regexp.MustCompile(`created post (\d+)`)
)

func TestPostsWorkflow(t *testing.T) {
	api := startAPI(t)

	out, err := run(t, "", "--api", api, "posts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Desenvolvimento Full Stack Moderno")

	out, err = run(t, "", "--api", api, "posts", "list", "--search", "inteligência")
	require.NoError(t, err)
	assert.Contains(t, out, "Inteligência Artificial na Educação")
	assert.NotContains(t, out, "Desenvolvimento Full Stack Moderno")

	out, err = run(t, "", "--api", api, "login", "student", "--email", "ana.silva@aluno.postech.com", "--password", "123456")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as Ana Silva (student)")
	m := tokenLine.FindStringSubmatch(out)
	require.Len(t, m, 2)
	student := m[1]

	out, err = run(t, "", "--api", api, "--token", student, "posts", "create",
		"--title", "Resumo da aula", "--content", "Padrões de arquitetura discutidos hoje em sala.")
	require.NoError(t, err)
	m = createdLine.FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, err = run(t, "", "--api", api, "--token", student, "posts", "mine")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumo da aula")
	assert.NotContains(t, out, "Desenvolvimento Full Stack Moderno")

	out, err = run(t, "", "--api", api, "--token", student, "posts", "edit", "--title", "Resumo da aula 3", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Resumo da aula 3")
	assert.Contains(t, out, "by Ana Silva (student)")

	_, err = run(t, "", "--api", api, "--token", student, "posts", "delete", "--yes", "1")
	assert.Error(t, err)

	out, err = run(t, "", "--api", api, "login", "teacher", "--email", "admin@welearn.local", "--password", "admin123")
	require.NoError(t, err)
	m = tokenLine.FindStringSubmatch(out)
	require.Len(t, m, 2)
	_, err = run(t, "", "--api", api, "--token", m[1], "posts", "mine")
	assert.Error(t, err)

	out, err = run(t, "n\n", "--api", api, "--token", student, "posts", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")

	out, err = run(t, "y\n", "--api", api, "--token", student, "posts", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted post "+id)

	_, err = run(t, "", "--api", api, "posts", "show", id)
	assert.Error(t, err)
}

func TestCommandErrors(t *testing.T) {
	api := startAPI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"create without token", []string{"posts", "create", "--title", "Hello World", "--content", "This is a sufficiently long body of text."}},
		{"edit without changes", []string{"--token", "x", "posts", "edit", "1"}},
		{"show bad id", []string{"posts", "show", "abc"}},
		{"mine without token", []string{"posts", "mine"}},
		{"wrong password", []string{"login", "teacher", "--email", "admin@welearn.local", "--password", "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", append([]string{"--api", api}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}
