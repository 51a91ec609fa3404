package dto

// CreateTeacherRequest is the body of POST /createTeacher
type CreateTeacherRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255" example:"Prof. Silva"`
	Email    string `json:"email" binding:"required,email" example:"silva@postech.com"`
	Password string `json:"password,omitempty" binding:"omitempty,min=6" example:"123456"`
}

// UpdateTeacherRequest is the body of PUT /updateTeacher/:id
type UpdateTeacherRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
}
