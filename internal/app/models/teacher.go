package models

// Teacher is a staff member who owns disciplines and may moderate posts.
type Teacher struct {
	ID           int64  `json:"id" example:"1"`
	Name         string `json:"name" example:"Prof. Silva"`
	Email        string `json:"email" example:"silva@postech.com"`
	PasswordHash string `json:"-"`
	Timestamps
}

// HasPassword reports whether the teacher can log in.
func (t *Teacher) HasPassword() bool {
	return t.PasswordHash != ""
}

// Actor returns the session identity for the teacher.
func (t *Teacher) Actor() Actor {
	return Actor{ID: t.ID, Name: t.Name, Email: t.Email, Role: RoleTeacher}
}
