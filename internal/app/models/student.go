package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64   `json:"id" example:"1"`
	Name         string  `json:"name" example:"Ana Silva"`
	Email        string  `json:"email" example:"ana.silva@aluno.postech.com"`
	PasswordHash string  `json:"-"`
	StudentID    string  `json:"studentId" example:"EST001"` // enrollment code, unique
	Course       *string `json:"course" example:"Engenharia de Software"`
	Timestamps
}

// Actor returns the session identity for the student.
func (s *Student) Actor() Actor {
	return Actor{ID: s.ID, Name: s.Name, Email: s.Email, Role: RoleStudent}
}
