package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/controllers"
	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	postController *controllers.PostController,
	teacherController *controllers.TeacherController,
	studentController *controllers.StudentController,
	disciplineController *controllers.DisciplineController,
	classController *controllers.ClassController,
	authController *controllers.AuthController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", healthController.Health)

	api := router.Group("/api")

	// --- Public routes ---
	api.GET("/posts", postController.GetAllPosts)
	api.GET("/posts/search", postController.SearchPosts)
	api.GET("/posts/:id", postController.GetPost)

	api.GET("/getTeacher/:id", teacherController.GetTeacher)
	api.GET("/getAllTeachers", teacherController.GetAllTeachers)

	api.GET("/getDiscipline/:id", disciplineController.GetDiscipline)
	api.GET("/getAllDisciplines", disciplineController.GetAllDisciplines)

	api.GET("/getClass/:id", classController.GetClass)
	api.GET("/getAllClasses", classController.GetAllClasses)

	api.POST("/createStudent", studentController.CreateStudent)
	api.GET("/getStudent/:id", studentController.GetStudent)
	api.GET("/getAllStudents", studentController.GetAllStudents)
	api.POST("/loginStudent", studentController.LoginStudent)
	api.GET("/students/:id/posts", postController.GetStudentPosts)

	api.POST("/auth/login", authController.Login)
	api.POST("/auth/logout", authController.Logout)

	// --- Any authenticated actor ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/verify", authController.Verify)

		authenticated.POST("/posts", postController.CreatePost)
		authenticated.PUT("/posts/:id", postController.UpdatePost)
		authenticated.DELETE("/posts/:id", postController.DeletePost)

		authenticated.PUT("/updateStudent/:id", studentController.UpdateStudent)
		authenticated.DELETE("/deleteStudent/:id", studentController.DeleteStudent)
	}

	// --- Teachers only ---
	teachers := authenticated.Group("")
	teachers.Use(authMiddleware.RoleRequired(models.RoleTeacher))
	{
		teachers.POST("/createTeacher", teacherController.CreateTeacher)
		teachers.PUT("/updateTeacher/:id", teacherController.UpdateTeacher)
		teachers.DELETE("/deleteTeacher/:id", teacherController.DeleteTeacher)

		teachers.POST("/createDiscipline", disciplineController.CreateDiscipline)
		teachers.PUT("/updateDiscipline/:id", disciplineController.UpdateDiscipline)
		teachers.DELETE("/deleteDiscipline/:id", disciplineController.DeleteDiscipline)

		teachers.POST("/createClass", classController.CreateClass)
		teachers.PUT("/updateClass/:id", classController.UpdateClass)
		teachers.DELETE("/deleteClass/:id", classController.DeleteClass)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "route not found"),
		))
	})
}
