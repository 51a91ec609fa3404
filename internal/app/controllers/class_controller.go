package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/services"
	"github.com/yigit/welearn/internal/middleware"
)

// ClassController handles class operations
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass handles class creation
// @Summary Create a class
// @Description disciplineId must reference an existing discipline; endDate may not precede startDate
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class"
// @Success 201 {object} models.Class
// @Failure 400 {object} dto.ErrorResponse "Validation failed, unknown discipline or inverted dates"
// @Failure 403 {object} dto.ErrorResponse "Teachers only"
// @Router /createClass [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, class)
}

// GetClass retrieves a class with its discipline
// @Summary Get a class
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} models.Class
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /getClass/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class, err := c.classService.GetClass(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, class)
}

// GetAllClasses lists classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /getAllClasses [get]
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	classes, err := c.classService.ListClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, classes)
}

// UpdateClass updates the fields present in the body
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Fields to change"
// @Success 200 {object} models.Class
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /updateClass/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.UpdateClass(ctx.Request.Context(), middleware.GetActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, class)
}

// DeleteClass deletes a class
// @Summary Delete a class
// @Tags classes
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /deleteClass/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.classService.DeleteClass(ctx.Request.Context(), middleware.GetActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
