package dto

import "github.com/yigit/welearn/internal/app/models"

// CreateClassRequest is the body of POST /createClass. Image is base64.
type CreateClassRequest struct {
	Name         string       `json:"name" binding:"required,notblank,max=255" example:"Turma 2024.1"`
	DisciplineID int64        `json:"disciplineId" binding:"required,gt=0" example:"1"`
	Description  *string      `json:"description,omitempty"`
	Image        []byte       `json:"image,omitempty" swaggertype:"string" format:"base64"`
	StartDate    *models.Date `json:"startDate" binding:"required" swaggertype:"string" example:"2024-03-01"`
	EndDate      *models.Date `json:"endDate,omitempty" swaggertype:"string" example:"2024-07-01"`
}

// UpdateClassRequest is the body of PUT /updateClass/:id
type UpdateClassRequest struct {
	Name         *string      `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	DisciplineID *int64       `json:"disciplineId,omitempty" binding:"omitempty,gt=0"`
	Description  *string      `json:"description,omitempty"`
	Image        *[]byte      `json:"image,omitempty" swaggertype:"string" format:"base64"`
	StartDate    *models.Date `json:"startDate,omitempty" swaggertype:"string"`
	EndDate      *models.Date `json:"endDate,omitempty" swaggertype:"string"`
}
