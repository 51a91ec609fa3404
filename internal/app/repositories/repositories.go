package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/welearn/internal/app/models"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// PostPatch lists the post fields to change. Nil fields are kept.
type PostPatch struct {
	Title   *string
	Content *string
	Author  *string
}

// TeacherPatch lists the teacher fields to change. Nil fields are kept.
type TeacherPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// StudentPatch lists the student fields to change. An empty Course clears it.
type StudentPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	StudentID    *string
	Course       *string
}

// DisciplinePatch lists the discipline fields to change. An empty
// Description clears it.
type DisciplinePatch struct {
	Name        *string
	TeacherID   *int64
	Description *string
}

// ClassPatch lists the class fields to change. An empty Description or
// Image clears it, as does a zero EndDate.
type ClassPatch struct {
	Name         *string
	DisciplineID *int64
	Description  *string
	Image        *[]byte
	StartDate    *models.Date
	EndDate      *models.Date
}

// PostRepository persists posts. Lists are ordered newest first.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetAll(ctx context.Context) ([]*models.Post, error)
	Search(ctx context.Context, term string) ([]*models.Post, error)
	GetByAuthor(ctx context.Context, authorType models.AuthorType, authorID int64) ([]*models.Post, error)
	Update(ctx context.Context, id int64, patch PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository persists teachers.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, id int64, patch TeacherPatch) (*models.Teacher, error)
	Delete(ctx context.Context, id int64) error
}

// StudentRepository persists students.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id int64, patch StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// DisciplineRepository persists disciplines.
type DisciplineRepository interface {
	Create(ctx context.Context, discipline *models.Discipline) error
	GetByID(ctx context.Context, id int64) (*models.Discipline, error)
	GetAll(ctx context.Context) ([]*models.Discipline, error)
	Update(ctx context.Context, id int64, patch DisciplinePatch) (*models.Discipline, error)
	Delete(ctx context.Context, id int64) error
}

// ClassRepository persists classes.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	Update(ctx context.Context, id int64, patch ClassPatch) (*models.Class, error)
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Posts       PostRepository
	Teachers    TeacherRepository
	Students    StudentRepository
	Disciplines DisciplineRepository
	Classes     ClassRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Posts:       NewPostRepository(db),
		Teachers:    NewTeacherRepository(db),
		Students:    NewStudentRepository(db),
		Disciplines: NewDisciplineRepository(db),
		Classes:     NewClassRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// nullIfEmpty maps "" to SQL NULL.
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
