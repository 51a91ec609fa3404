package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/app/services"
	"github.com/yigit/welearn/internal/middleware"
)

// DisciplineController handles discipline operations
type DisciplineController struct {
	disciplineService services.DisciplineService
}

// NewDisciplineController creates a new DisciplineController
func NewDisciplineController(disciplineService services.DisciplineService) *DisciplineController {
	return &DisciplineController{
		disciplineService: disciplineService,
	}
}

// CreateDiscipline handles discipline creation
// @Summary Create a discipline
// @Description teacherId defaults to the caller
// @Tags disciplines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDisciplineRequest true "Discipline"
// @Success 201 {object} models.Discipline
// @Failure 400 {object} dto.ErrorResponse "Validation failed or unknown teacher"
// @Failure 403 {object} dto.ErrorResponse "Teachers only"
// @Router /createDiscipline [post]
func (c *DisciplineController) CreateDiscipline(ctx *gin.Context) {
	var req dto.CreateDisciplineRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	discipline, err := c.disciplineService.CreateDiscipline(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, discipline)
}

// GetDiscipline retrieves a discipline with its teacher
// @Summary Get a discipline
// @Tags disciplines
// @Produce json
// @Param id path int true "Discipline ID"
// @Success 200 {object} models.Discipline
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Router /getDiscipline/{id} [get]
func (c *DisciplineController) GetDiscipline(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	discipline, err := c.disciplineService.GetDiscipline(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, discipline)
}

// GetAllDisciplines lists disciplines
// @Summary List disciplines
// @Tags disciplines
// @Produce json
// @Success 200 {array} models.Discipline
// @Router /getAllDisciplines [get]
func (c *DisciplineController) GetAllDisciplines(ctx *gin.Context) {
	disciplines, err := c.disciplineService.ListDisciplines(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, disciplines)
}

// UpdateDiscipline updates the fields present in the body
// @Summary Update a discipline
// @Tags disciplines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discipline ID"
// @Param request body dto.UpdateDisciplineRequest true "Fields to change"
// @Success 200 {object} models.Discipline
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Router /updateDiscipline/{id} [put]
func (c *DisciplineController) UpdateDiscipline(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateDisciplineRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	discipline, err := c.disciplineService.UpdateDiscipline(ctx.Request.Context(), middleware.GetActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, discipline)
}

// DeleteDiscipline deletes a discipline without classes
// @Summary Delete a discipline
// @Tags disciplines
// @Security BearerAuth
// @Param id path int true "Discipline ID"
// @Success 204 "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Discipline still has classes"
// @Failure 404 {object} dto.ErrorResponse "Discipline not found"
// @Router /deleteDiscipline/{id} [delete]
func (c *DisciplineController) DeleteDiscipline(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.disciplineService.DeleteDiscipline(ctx.Request.Context(), middleware.GetActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
