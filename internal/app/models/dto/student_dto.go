package dto

// CreateStudentRequest is the body of POST /createStudent
type CreateStudentRequest struct {
	Name      string  `json:"name" binding:"required,notblank,max=255" example:"Ana Silva"`
	Email     string  `json:"email" binding:"required,email" example:"ana.silva@aluno.postech.com"`
	Password  string  `json:"password" binding:"required,min=6" example:"123456"`
	StudentID string  `json:"studentId" binding:"required,notblank,max=50" example:"EST001"`
	Course    *string `json:"course,omitempty" example:"Engenharia de Software"`
}

// UpdateStudentRequest is the body of PUT /updateStudent/:id
type UpdateStudentRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=6"`
	StudentID *string `json:"studentId,omitempty" binding:"omitempty,notblank,max=50"`
	Course    *string `json:"course,omitempty"`
}
