package dto

// CreateDisciplineRequest is the body of POST /createDiscipline. TeacherID
// defaults to the authenticated teacher.
type CreateDisciplineRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=255" example:"Arquitetura de Software"`
	TeacherID   *int64  `json:"teacherId,omitempty" binding:"omitempty,gt=0" example:"1"`
	Description *string `json:"description,omitempty"`
}

// UpdateDisciplineRequest is the body of PUT /updateDiscipline/:id
type UpdateDisciplineRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	TeacherID   *int64  `json:"teacherId,omitempty" binding:"omitempty,gt=0"`
	Description *string `json:"description,omitempty"`
}
