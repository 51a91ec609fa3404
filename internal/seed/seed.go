package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/welearn/internal/app/models"
	appRepos "github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/config"
	"github.com/yigit/welearn/internal/pkg/apperrors"
	"github.com/yigit/welearn/internal/pkg/auth"
)

// DemoStudentPassword is shared by every demo student
const DemoStudentPassword = "123456"

type demoStudent struct {
	name, email, code, course string
}

var demoStudents = []demoStudent{
	{"Ana Silva", "ana.silva@aluno.postech.com", "EST001", "Engenharia de Software"},
	{"Carlos Santos", "carlos.santos@aluno.postech.com", "EST002", "Ciência de Dados"},
	{"Maria Oliveira", "maria.oliveira@aluno.postech.com", "EST003", "Arquitetura de Software"},
}

// oldest first, so the last one is listed on top
var demoPosts = []appModels.Post{
	{
		Title:      "Bem-vindos ao Blog da POSTECH",
		Content:    "Este é o primeiro post do nosso blog acadêmico. Aqui compartilharemos conhecimentos, experiências e descobertas do mundo da tecnologia e inovação.",
		Author:     "Prof. Silva",
		AuthorType: appModels.AuthorTeacher,
	},
	{
		Title:      "Inteligência Artificial na Educação",
		Content:    "A inteligência artificial está revolucionando a forma como ensinamos e aprendemos. Neste post, exploramos as principais aplicações da IA no contexto educacional.",
		Author:     "Prof. Maria Santos",
		AuthorType: appModels.AuthorTeacher,
	},
	{
		Title:      "Desenvolvimento Full Stack Moderno",
		Content:    "O desenvolvimento full stack evoluiu significativamente nos últimos anos. Discutimos as principais tecnologias e frameworks.",
		Author:     "Prof. João Oliveira",
		AuthorType: appModels.AuthorTeacher,
	},
}

// CreateDefaultData creates the default teacher and, when enabled, the
// demo students and posts. Running it again changes nothing.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, cfg *config.Config, lgr zerolog.Logger) error {
	if !cfg.Seed.Enabled {
		lgr.Info().Msg("Seeding disabled")
		return nil
	}

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error // To collect potential errors without stopping the process

	if err := createDefaultTeacher(ctx, repos.Teachers, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if cfg.Seed.DemoData {
		if err := createDemoStudents(ctx, repos.Students, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
		if err := createDemoPosts(ctx, repos.Posts, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func createDefaultTeacher(ctx context.Context, teachers appRepos.TeacherRepository, cfg *config.Config, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Seed.TeacherEmail))

	_, err := teachers.GetByEmail(ctx, email)
	if err == nil {
		lgr.Debug().Str("email", email).Msg("Default teacher already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		lgr.Error().Err(err).Msg("Error checking default teacher")
		return err
	}

	teacher := &appModels.Teacher{Name: cfg.Seed.TeacherName, Email: email}
	if cfg.Seed.TeacherPassword != "" {
		hash, err := auth.HashPassword(cfg.Seed.TeacherPassword)
		if err != nil {
			return fmt.Errorf("error hashing default teacher password: %w", err)
		}
		teacher.PasswordHash = hash
	} else {
		lgr.Warn().Str("email", email).Msg("Default teacher has no password and cannot log in; set SEED_TEACHER_PASSWORD")
	}

	if err := teachers.Create(ctx, teacher); err != nil && !errors.Is(err, apperrors.ErrConflict) {
		lgr.Error().Err(err).Msg("Error creating default teacher")
		return err
	}

	lgr.Info().Int64("teacherID", teacher.ID).Str("email", email).Msg("Default teacher created")
	return nil
}

func createDemoStudents(ctx context.Context, students appRepos.StudentRepository, lgr zerolog.Logger) error {
	hash, err := auth.HashPassword(DemoStudentPassword)
	if err != nil {
		return fmt.Errorf("error hashing demo password: %w", err)
	}

	var finalErr error
	for _, s := range demoStudents {
		course := s.course
		err := students.Create(ctx, &appModels.Student{
			Name:         s.name,
			Email:        s.email,
			PasswordHash: hash,
			StudentID:    s.code,
			Course:       &course,
		})
		switch {
		case err == nil:
			lgr.Info().Str("email", s.email).Msg("Demo student created")
		case errors.Is(err, apperrors.ErrConflict):
			// already seeded
		default:
			lgr.Error().Err(err).Str("email", s.email).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

func createDemoPosts(ctx context.Context, posts appRepos.PostRepository, lgr zerolog.Logger) error {
	existing, err := posts.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error checking existing posts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range demoPosts {
		post := demoPosts[i]
		if err := posts.Create(ctx, &post); err != nil {
			lgr.Error().Err(err).Str("title", post.Title).Msg("Error creating demo post")
			return err
		}
	}

	lgr.Info().Int("count", len(demoPosts)).Msg("Demo posts created")
	return nil
}
