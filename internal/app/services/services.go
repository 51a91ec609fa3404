package services

import (
	"github.com/yigit/welearn/internal/app/auth"
	"github.com/yigit/welearn/internal/app/repositories"
	pkgauth "github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/logger"
)

// Services defined in this package:
// - PostService: post CRUD, search and author policy
// - TeacherService, StudentService: account records
// - DisciplineService, ClassService: course catalogue
// - AuthService: login for both roles and session verification
type Services struct {
	Posts       PostService
	Teachers    TeacherService
	Students    StudentService
	Disciplines DisciplineService
	Classes     ClassService
	Auth        *AuthService
}

// NewServices wires every service onto one set of repositories
func NewServices(repos *repositories.Repositories, jwtService *pkgauth.JWTService) *Services {
	authz := auth.NewAuthorizationService(repos.Posts, repos.Students)

	return &Services{
		Posts:       NewPostService(repos.Posts, repos.Students, authz),
		Teachers:    NewTeacherService(repos.Teachers),
		Students:    NewStudentService(repos.Students, authz),
		Disciplines: NewDisciplineService(repos.Disciplines, repos.Teachers),
		Classes:     NewClassService(repos.Classes, repos.Disciplines),
		Auth:        NewAuthService(repos.Teachers, repos.Students, jwtService, logger.With("component", "auth")),
	}
}
