package models

import (
	"errors"
	"strings"
	"time"
)

// RoleType is the kind of authenticated actor.
type RoleType string

const (
	RoleTeacher RoleType = "teacher"
	RoleStudent RoleType = "student"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// Actor is the identity resolved from a session token.
type Actor struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  RoleType `json:"role"`
}

// IsTeacher reports whether the actor has the teacher role.
func (a *Actor) IsTeacher() bool {
	return a != nil && a.Role == RoleTeacher
}

// IsStudent reports whether the actor has the student role.
func (a *Actor) IsStudent() bool {
	return a != nil && a.Role == RoleStudent
}

// Timestamps shared by every persisted entity
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2024-03-01T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-03-01T10:00:00Z"`
}

const dateLayout = "2006-01-02"

// Date is a calendar date. It decodes from "2006-01-02" or RFC3339 and
// encodes as "2006-01-02".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts a plain date or an RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, errors.New("date must be formatted as YYYY-MM-DD")
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
