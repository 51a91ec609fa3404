package models

// Class is a scheduled offering of a discipline.
type Class struct {
	ID           int64   `json:"id" example:"1"`
	Name         string  `json:"name" example:"Turma 2024.1"`
	DisciplineID int64   `json:"disciplineId" example:"1"`
	Description  *string `json:"description"`
	Image        []byte  `json:"image,omitempty" swaggertype:"string" format:"base64"`
	StartDate    Date    `json:"startDate" swaggertype:"string" example:"2024-03-01"`
	EndDate      *Date   `json:"endDate" swaggertype:"string" example:"2024-07-01"`
	Timestamps

	Discipline *Discipline `json:"discipline,omitempty"`
}

// EndsBeforeStart reports whether the date range is inverted.
func (c *Class) EndsBeforeStart() bool {
	return c.EndDate != nil && c.EndDate.Before(c.StartDate.Time)
}
