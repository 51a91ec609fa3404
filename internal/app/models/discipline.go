package models

// Discipline is a subject taught by a teacher.
type Discipline struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"name" example:"Arquitetura de Software"`
	TeacherID   int64   `json:"teacherId" example:"1"`
	Description *string `json:"description"`
	Timestamps

	Teacher *Teacher `json:"teacher,omitempty"`
}
