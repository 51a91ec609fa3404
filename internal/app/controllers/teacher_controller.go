package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/services"
	"github.com/yigit/welearn/internal/middleware"
)

// TeacherController handles teacher operations
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
	}
}

// CreateTeacher handles teacher creation
// @Summary Create a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} dto.ErrorResponse "Validation failed or email in use"
// @Failure 403 {object} dto.ErrorResponse "Teachers only"
// @Router /createTeacher [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.CreateTeacher(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, teacher)
}

// GetTeacher retrieves a teacher by ID
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /getTeacher/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	teacher, err := c.teacherService.GetTeacher(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, teacher)
}

// GetAllTeachers lists teachers
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {array} models.Teacher
// @Router /getAllTeachers [get]
func (c *TeacherController) GetAllTeachers(ctx *gin.Context) {
	teachers, err := c.teacherService.ListTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, teachers)
}

// UpdateTeacher updates the fields present in the body
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} models.Teacher
// @Failure 400 {object} dto.ErrorResponse "Validation failed or email in use"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /updateTeacher/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.UpdateTeacher(ctx.Request.Context(), middleware.GetActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, teacher)
}

// DeleteTeacher deletes a teacher without disciplines
// @Summary Delete a teacher
// @Tags teachers
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 204 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Teacher still owns disciplines"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /deleteTeacher/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.teacherService.DeleteTeacher(ctx.Request.Context(), middleware.GetActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
